package service

import (
	"cleanbook/config"
	"cleanbook/infras/kafka"
	"cleanbook/infras/otel"
	"cleanbook/infras/stripe"
	"cleanbook/internal/domains/payment/model"
	"cleanbook/internal/domains/payment/model/dto"
	userModel "cleanbook/internal/domains/user/model"
	userRepo "cleanbook/internal/domains/user/repository"
	"cleanbook/shared"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/pricing"
	"cleanbook/shared/timezone"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	Pay(ctx context.Context, caller actor.Actor, req dto.PayRequest) (dto.PayResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (dto.WebhookResponse, error)
}

type serviceImpl struct {
	userRepo userRepo.User
	gateway  stripe.Gateway
	kafka    kafka.Client
	cfg      *config.Config
	otel     otel.Otel
	clock    timezone.Clock
}

func New(userRepo userRepo.User, gateway stripe.Gateway, kafka kafka.Client, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Payment {
	return &serviceImpl{
		userRepo: userRepo,
		gateway:  gateway,
		kafka:    kafka,
		cfg:      cfg,
		otel:     otel,
		clock:    clock,
	}
}

// amountFor prices the request server side. Totals sent by the client are never trusted.
func (s *serviceImpl) amountFor(user userModel.User, req dto.PayRequest) float64 {
	if req.Mode == model.ModeDeposit {
		return s.cfg.App.Booking.DepositAmount
	}

	return user.CleaningPrice + pricing.AddOnTotal(req.SelectedAddOns, req.CeilingFanCount)
}

func (s *serviceImpl) Pay(ctx context.Context, caller actor.Actor, req dto.PayRequest) (res dto.PayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Pay")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return res, failure.Unauthorized("authentication required")
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(caller.ID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return res, failure.NotFound("user not found")
	}

	amount := pricing.ToMinorUnits(s.amountFor(user, req))
	if amount <= 0 {
		return res, failure.BadRequestFromString("payment amount must be positive")
	}

	receipt, err := s.gateway.Charge(ctx, stripe.ChargeRequest{
		Amount:   amount,
		Currency: s.cfg.App.Booking.Currency,
		Metadata: map[string]string{
			model.MetadataUserID: user.ID,
			model.MetadataMode:   req.Mode,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create payment intent")

		return res, failure.Upstream("payment provider unavailable")
	}

	log.Info().Str("payment_id", receipt.ID).Str("mode", req.Mode).Int64("amount", amount).Msg("payment intent created")

	res.FromReceipt(receipt)

	return res, nil
}

func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (res dto.WebhookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.gateway.ConstructEvent(payload, signature)
	if err != nil {
		if errors.Is(err, stripe.ErrNotConfigured) {
			log.Error().Err(err).Msg("stripe webhook secret not configured")

			return res, fmt.Errorf("failed to verify webhook: %w", err)
		}

		return res, failure.BadRequestFromString("webhook signature verification failed")
	}

	res.Received = true
	res.Type = event.Type

	switch event.Type {
	case stripe.EventPaymentIntentSucceeded:
		if event.Receipt == nil {
			log.Warn().Str("event_id", event.ID).Msg("payment succeeded event without payment intent")

			return res, nil
		}

		captured := model.NewCapturedEvent(constant.EventPaymentCaptured, *event.Receipt, s.clock.Now())

		log.Info().Str("payment_id", captured.PaymentID).Float64("amount", captured.Amount).Msg("payment captured")

		err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Payment, kafka.Message{Key: captured.PaymentID, Value: captured})
		if err != nil {
			log.Error().Err(err).Str("payment_id", captured.PaymentID).Msg("failed to publish payment captured event")

			return res, fmt.Errorf("failed to publish payment captured event: %w", err)
		}
	case stripe.EventPaymentIntentFailed:
		log.Warn().Str("event_id", event.ID).Msg("payment intent failed")
	default:
		log.Debug().Str("event_id", event.ID).Str("type", event.Type).Msg("unhandled stripe event")
	}

	return res, nil
}
