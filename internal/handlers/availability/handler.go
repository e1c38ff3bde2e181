package availability

import (
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/availability/model/dto"
	"cleanbook/internal/domains/availability/service"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	"cleanbook/shared/validator"
	"cleanbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Post("/set-availability", handler.SetAvailability)
		routerGroup.Get("/get-availability", handler.GetAvailability)
		routerGroup.Put("/update-availability", handler.UpdateAvailability)
		routerGroup.Delete("/delete-availability", handler.DeleteAvailability)
		routerGroup.Get("/my-availability", handler.MyAvailability)
		routerGroup.Get("/admin-id", handler.AdminID)
	})
}

// SetAvailability merges dates and times into the caller's availability.
// @Summary Set availability
// @Description Union the submitted date to times map into the admin's availability.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.SetRequest true "Availability keyed by YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.SetResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/set-availability [post]
// @Security BearerAuth
func (handler *Handler) SetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetAvailability")
	defer scope.End()

	req := dto.SetRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Set(ctx, actor.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailability lists open slots across every admin.
// @Summary Get availability
// @Description Aggregate open times by date and time with the admins offering them.
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[dto.GetAllResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/get-availability [get]
// @Security BearerAuth
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateAvailability adds times to one date.
// @Summary Update availability
// @Description Union times into a single date, creating the date when missing.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.UpdateRequest true "Date and times"
// @Success 200 {object} response.Data[dto.UpdateResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/update-availability [put]
// @Security BearerAuth
func (handler *Handler) UpdateAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAvailability")
	defer scope.End()

	req := dto.UpdateRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, actor.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteAvailability removes one date from the caller's availability.
// @Summary Delete availability
// @Description Remove a whole date entry. The date is read from the body or the date query parameter.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.DeleteRequest false "Date to remove"
// @Param date query string false "Date to remove (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.DeleteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/delete-availability [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAvailability")
	defer scope.End()

	req := dto.DeleteRequest{Date: request.URL.Query().Get(constant.RequestParamDate)}

	if req.Date == "" {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	} else if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Delete(ctx, actor.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// MyAvailability returns the caller's own availability.
// @Summary My availability
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[dto.MineResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/my-availability [get]
// @Security BearerAuth
func (handler *Handler) MyAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MyAvailability")
	defer scope.End()

	res, err := handler.service.Mine(ctx, actor.FromContext(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// AdminID returns the first registered admin.
// @Summary Admin id
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[dto.AdminIDResponse]
// @Failure 404 {object} response.Error
// @Router /api/admin/admin-id [get]
// @Security BearerAuth
func (handler *Handler) AdminID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminID")
	defer scope.End()

	res, err := handler.service.AdminID(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin id")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
