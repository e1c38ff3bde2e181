package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/shared/constant"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"

	paymentIntentEventPrefix = "payment_intent."
	statusSucceeded          = "succeeded"

	otelAttrPaymentID = "payment_id"
	otelAttrAmount    = "amount"
)

var (
	ErrNotConfigured    = errors.New("stripe is not configured")
	ErrInvalidSignature = errors.New("invalid stripe signature")
	ErrInvalidAmount    = errors.New("amount must be positive")
)

// ChargeRequest describes a payment intent to create. Amount is in minor units.
type ChargeRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Receipt is the subset of a payment intent the booking flow relies on.
type Receipt struct {
	ID             string
	ClientSecret   string
	Status         string
	Currency       string
	Amount         int64
	AmountReceived int64
	Metadata       map[string]string
}

func (r Receipt) Succeeded() bool {
	return r.Status == statusSucceeded
}

type RefundOutcome struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

// Event is a verified webhook event. Receipt is set for payment_intent events.
type Event struct {
	ID      string
	Type    string
	Receipt *Receipt
}

type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Receipt, error)
	Receipt(ctx context.Context, paymentID string) (Receipt, error)
	Refund(ctx context.Context, paymentID string, amount int64) (RefundOutcome, error)
	ConstructEvent(payload []byte, signature string) (Event, error)
}

type gatewayImpl struct {
	api           *client.API
	webhookSecret string
	otel          otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Gateway {
	gateway := &gatewayImpl{
		webhookSecret: cfg.External.Stripe.WebhookSecret,
		otel:          otl,
	}

	if cfg.External.Stripe.SecretKey == "" {
		log.Warn().Msg("stripe secret key not configured, payment calls will fail")

		return gateway
	}

	gateway.api = &client.API{}
	gateway.api.Init(cfg.External.Stripe.SecretKey, nil)

	return gateway
}

func (g *gatewayImpl) Charge(ctx context.Context, req ChargeRequest) (res Receipt, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".Charge")
	defer scope.End()
	defer scope.TraceIfError(err)

	if g.api == nil {
		return res, ErrNotConfigured
	}

	if req.Amount <= 0 {
		return res, ErrInvalidAmount
	}

	scope.SetAttribute(otelAttrAmount, int(req.Amount))

	params := &stripeGo.PaymentIntentParams{
		Amount:   stripeGo.Int64(req.Amount),
		Currency: stripeGo.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripeGo.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeGo.Bool(true),
		},
	}
	params.Context = ctx

	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		log.Error().Err(err).Msg("failed to create payment intent")

		return res, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return fromPaymentIntent(intent), nil
}

func (g *gatewayImpl) Receipt(ctx context.Context, paymentID string) (res Receipt, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	if g.api == nil {
		return res, ErrNotConfigured
	}

	scope.SetAttribute(otelAttrPaymentID, paymentID)

	params := &stripeGo.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Get(paymentID, params)
	if err != nil {
		log.Error().Err(err).Str("payment_id", paymentID).Msg("failed to retrieve payment intent")

		return res, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	return fromPaymentIntent(intent), nil
}

func (g *gatewayImpl) Refund(ctx context.Context, paymentID string, amount int64) (res RefundOutcome, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	if g.api == nil {
		return res, ErrNotConfigured
	}

	scope.SetAttributes(map[string]any{
		otelAttrPaymentID: paymentID,
		otelAttrAmount:    int(amount),
	})

	params := &stripeGo.RefundParams{
		PaymentIntent: stripeGo.String(paymentID),
	}
	params.Context = ctx

	if amount > 0 {
		params.Amount = stripeGo.Int64(amount)
	}

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		log.Error().Err(err).Str("payment_id", paymentID).Msg("failed to create refund")

		return res, fmt.Errorf("failed to create refund: %w", err)
	}

	return RefundOutcome{
		ID:     refund.ID,
		Status: string(refund.Status),
		Amount: refund.Amount,
	}, nil
}

func (g *gatewayImpl) ConstructEvent(payload []byte, signature string) (Event, error) {
	if g.webhookSecret == "" {
		return Event{}, ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		log.Warn().Err(err).Msg("stripe webhook signature verification failed")

		return Event{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	return toEvent(event)
}

func toEvent(event stripeGo.Event) (Event, error) {
	res := Event{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if !strings.HasPrefix(res.Type, paymentIntentEventPrefix) || event.Data == nil {
		return res, nil
	}

	var intent stripeGo.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return res, fmt.Errorf("failed to decode payment intent event: %w", err)
	}

	receipt := fromPaymentIntent(&intent)
	res.Receipt = &receipt

	return res, nil
}

func fromPaymentIntent(intent *stripeGo.PaymentIntent) Receipt {
	return Receipt{
		ID:             intent.ID,
		ClientSecret:   intent.ClientSecret,
		Status:         string(intent.Status),
		Currency:       string(intent.Currency),
		Amount:         intent.Amount,
		AmountReceived: intent.AmountReceived,
		Metadata:       intent.Metadata,
	}
}
