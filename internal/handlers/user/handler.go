package user

import (
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/user/model/dto"
	"cleanbook/internal/domains/user/service"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	"cleanbook/shared/validator"
	"cleanbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/profile", handler.GetProfile)
		routerGroup.Put("/profile", handler.UpdateProfile)
		routerGroup.Delete("/profile", handler.DeleteProfile)
	})
}

// GetProfile returns the caller's profile.
// @Summary Get profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.ProfileResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/users/profile [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	res, err := handler.service.Profile(ctx, actor.FromContext(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateProfile applies a partial update to the caller's profile.
// @Summary Update profile
// @Description Only provided fields change. A new home size recomputes the cleaning price.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Data[dto.UpdateProfileResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/users/profile [put]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	req := dto.UpdateProfileRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateProfile(ctx, actor.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    res,
	})
}

// DeleteProfile removes the caller's account and their bookings.
// @Summary Delete profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/users/profile [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProfile")
	defer scope.End()

	if err := handler.service.DeleteProfile(ctx, actor.FromContext(ctx)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete profile")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Profile deleted successfully")
}
