package booking

import (
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/booking/model/dto"
	"cleanbook/internal/domains/booking/service"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/validator"
	"cleanbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/book", handler.Book)
		routerGroup.Get("/user-bookings", handler.UserBookings)
		routerGroup.Delete("/cancel/{"+constant.RequestParamBookingID+"}", handler.Cancel)
		routerGroup.Delete("/delete", handler.Delete)
		routerGroup.Get("/all", handler.All)
		routerGroup.Get("/get-bookings", handler.ByDate)
	})
}

// Book claims a slot for the caller.
// @Summary Book a cleaning
// @Description Assign the first available admin for the date and time and claim the slot.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.BookRequest true "Book Request"
// @Success 201 {object} response.Data[dto.BookResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /api/bookings/book [post]
// @Security BearerAuth
func (handler *Handler) Book(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Book")
	defer scope.End()

	req := dto.BookRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	caller := actor.FromContext(ctx)

	res, err := handler.service.Book(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book slot")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("booking created", map[string]any{"user.id": caller.ID, "booking.id": res.Booking.ID})

	response.WithJSON(writer, http.StatusCreated, res)
}

// UserBookings lists the caller's bookings.
// @Summary My bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.BookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/user-bookings [get]
// @Security BearerAuth
func (handler *Handler) UserBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UserBookings")
	defer scope.End()

	res, err := handler.service.UserBookings(ctx, actor.FromContext(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Cancel cancels one of the caller's bookings and applies the refund policy.
// @Summary Cancel a booking
// @Description Cancellations more than 24 hours ahead are refunded when a payment exists.
// @Tags Booking
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Data[dto.CancelResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/cancel/{bookingId} [delete]
// @Security BearerAuth
func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamBookingID)

	if err := validator.ValidateVar(bookingID, "required,uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Cancel(ctx, actor.FromContext(ctx), bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Delete removes any booking without refund.
// @Summary Delete a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.DeleteRequest true "Booking to delete"
// @Success 200 {object} response.Data[dto.MessageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/bookings/delete [delete]
// @Security BearerAuth
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	req := dto.DeleteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Delete(ctx, actor.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// All lists every booking with its owner.
// @Summary All bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param filter query dto.ListFilter false "Filters"
// @Success 200 {object} response.Data[dto.AllBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/all [get]
// @Security BearerAuth
func (handler *Handler) All(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".All")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	filter := dto.ListFilter{}
	filter.FromRequest(request)

	if err := validator.ValidateStruct(&filter); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.All(ctx, actor.FromContext(ctx), queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get all bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ByDate lists the bookings on one date.
// @Summary Bookings on a date
// @Tags Booking
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.BookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /api/bookings/get-bookings [get]
// @Security BearerAuth
func (handler *Handler) ByDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ByDate")
	defer scope.End()

	res, err := handler.service.ByDate(ctx, actor.FromContext(ctx), request.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings by date")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
