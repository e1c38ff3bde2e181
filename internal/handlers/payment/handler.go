package payment

import (
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/payment/model/dto"
	"cleanbook/internal/domains/payment/service"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/validator"
	"cleanbook/transport/http/response"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Stripe rejects webhook payloads above this size.
const maxWebhookBytes = 65536

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/payment/pay", handler.Pay)
	router.Post("/stripe/webhook", handler.Webhook)
}

// Pay creates a payment intent for a deposit or the full price.
// @Summary Create payment
// @Description The amount is computed server side from the mode, the caller's price and the add-ons.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.PayRequest true "Pay Request"
// @Success 200 {object} response.Data[dto.PayResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /api/payment/pay [post]
// @Security BearerAuth
func (handler *Handler) Pay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Pay")
	defer scope.End()

	req := dto.PayRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Pay(ctx, actor.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Webhook receives signed Stripe events.
// @Summary Stripe webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} response.Data[dto.WebhookResponse]
// @Failure 400 {object} response.Error
// @Router /api/stripe/webhook [post]
func (handler *Handler) Webhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Webhook")
	defer scope.End()

	payload, err := io.ReadAll(io.LimitReader(request.Body, maxWebhookBytes))
	if err != nil {
		err = failure.BadRequest(fmt.Errorf("failed to read webhook body: %w", err))
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.HandleWebhook(ctx, payload, request.Header.Get(constant.RequestHeaderStripeSignature))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle stripe webhook")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
