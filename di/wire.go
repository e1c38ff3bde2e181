//go:build wireinject
// +build wireinject

package di

import (
	"cleanbook/config"
	"cleanbook/infras/jwt"
	"cleanbook/infras/kafka"
	"cleanbook/infras/mailer"
	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/infras/redis"
	"cleanbook/infras/s3"
	"cleanbook/infras/stripe"
	"cleanbook/permissions"
	"cleanbook/shared/cache"
	"cleanbook/shared/servicearea"
	"cleanbook/shared/timezone"
	"cleanbook/transport/http"
	"cleanbook/transport/http/middleware"
	"cleanbook/transport/http/router"

	"github.com/google/wire"

	authService "cleanbook/internal/domains/auth/service"
	availabilityRepository "cleanbook/internal/domains/availability/repository"
	availabilityService "cleanbook/internal/domains/availability/service"
	bookingRepository "cleanbook/internal/domains/booking/repository"
	bookingService "cleanbook/internal/domains/booking/service"
	notificationService "cleanbook/internal/domains/notification/service"
	paymentService "cleanbook/internal/domains/payment/service"
	userRepository "cleanbook/internal/domains/user/repository"
	userService "cleanbook/internal/domains/user/service"
	authHandler "cleanbook/internal/handlers/auth"
	availabilityHandler "cleanbook/internal/handlers/availability"
	bookingHandler "cleanbook/internal/handlers/booking"
	paymentHandler "cleanbook/internal/handlers/payment"
	userHandler "cleanbook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mailer.New,
	s3.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
	servicearea.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	notificationService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	availabilityDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
