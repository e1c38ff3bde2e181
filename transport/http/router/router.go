package router

import (
	"cleanbook/internal/handlers/auth"
	"cleanbook/internal/handlers/availability"
	"cleanbook/internal/handlers/booking"
	"cleanbook/internal/handlers/payment"
	"cleanbook/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Payment      payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.User.Router(router)
	r.DomainHandlers.Availability.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Payment.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
