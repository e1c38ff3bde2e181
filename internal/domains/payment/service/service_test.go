package service_test

import (
	"cleanbook/config"
	kafkaPkg "cleanbook/infras/kafka"
	kafkaMocks "cleanbook/infras/kafka/mocks"
	"cleanbook/infras/otel/mocks"
	"cleanbook/infras/stripe"
	stripeMocks "cleanbook/infras/stripe/mocks"
	"cleanbook/internal/domains/payment/model"
	"cleanbook/internal/domains/payment/model/dto"
	"cleanbook/internal/domains/payment/service"
	userMocks "cleanbook/internal/domains/user/mocks"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	customer   = actor.Actor{ID: "user-1", Email: "jane@example.com", Role: constant.RoleUser}
	storedUser = userModel.User{ID: "user-1", Email: "jane@example.com", CleaningPrice: 140, Role: constant.RoleUser}
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc     service.Payment
	users   *userMocks.MockUser
	gateway *stripeMocks.MockGateway
	kafka   *kafkaMocks.MockClient
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Booking.DepositAmount = 50
	cfg.App.Booking.Currency = "usd"
	cfg.Kafka.Topics.Payment = "payment-events"

	f := fixture{
		users:   userMocks.NewMockUser(ctrl),
		gateway: stripeMocks.NewMockGateway(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.users, f.gateway, f.kafka, cfg, mocks.NewOtel(), fixedClock{})

	return f
}

func chargeOf(amount int64, mode string) stripe.ChargeRequest {
	return stripe.ChargeRequest{
		Amount:   amount,
		Currency: "usd",
		Metadata: map[string]string{model.MetadataUserID: "user-1", model.MetadataMode: mode},
	}
}

func TestPaymentService_Pay(t *testing.T) {
	tests := []struct {
		name      string
		caller    actor.Actor
		req       dto.PayRequest
		setupMock func(f fixture)
		want      dto.PayResponse
		wantCode  int
	}{
		{
			name:   "deposit uses configured amount",
			caller: customer,
			req:    dto.PayRequest{Mode: model.ModeDeposit, SelectedAddOns: []string{"windowCleaning"}},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser, nil)
				f.gateway.EXPECT().Charge(gomock.Any(), chargeOf(5000, model.ModeDeposit)).
					Return(stripe.Receipt{ID: "pi_1", ClientSecret: "secret_1", Amount: 5000}, nil)
			},
			want: dto.PayResponse{ClientSecret: "secret_1", PaymentID: "pi_1", TotalAmount: 50},
		},
		{
			name:   "full price adds add-ons to stored cleaning price",
			caller: customer,
			req: dto.PayRequest{
				Mode:            model.ModeFull,
				SelectedAddOns:  []string{"windowCleaning", "ovenCleaning", "ceilingFanCleaning"},
				CeilingFanCount: 2,
			},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser, nil)
				f.gateway.EXPECT().Charge(gomock.Any(), chargeOf(18000, model.ModeFull)).
					Return(stripe.Receipt{ID: "pi_2", ClientSecret: "secret_2", Amount: 18000}, nil)
			},
			want: dto.PayResponse{ClientSecret: "secret_2", PaymentID: "pi_2", TotalAmount: 180},
		},
		{
			name:      "anonymous caller",
			caller:    actor.Actor{},
			req:       dto.PayRequest{Mode: model.ModeDeposit},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "unknown user",
			caller: customer,
			req:    dto.PayRequest{Mode: model.ModeDeposit},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "gateway failure",
			caller: customer,
			req:    dto.PayRequest{Mode: model.ModeDeposit},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser, nil)
				f.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(stripe.Receipt{}, errors.New("card network down"))
			},
			wantCode: http.StatusBadGateway,
		},
		{
			name:   "storage failure",
			caller: customer,
			req:    dto.PayRequest{Mode: model.ModeDeposit},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			got, err := f.svc.Pay(context.Background(), tt.caller, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	receipt := &stripe.Receipt{
		ID:             "pi_1",
		Currency:       "usd",
		AmountReceived: 5000,
		Metadata:       map[string]string{model.MetadataUserID: "user-1", model.MetadataMode: model.ModeDeposit},
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		want      dto.WebhookResponse
		wantCode  int
	}{
		{
			name: "publishes captured payment",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().ConstructEvent(payload, "sig").Return(stripe.Event{
					ID:      "evt_1",
					Type:    stripe.EventPaymentIntentSucceeded,
					Receipt: receipt,
				}, nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), "payment-events", kafkaPkg.Message{
					Key: "pi_1",
					Value: model.CapturedEvent{
						Type:       constant.EventPaymentCaptured,
						PaymentID:  "pi_1",
						UserID:     "user-1",
						Mode:       model.ModeDeposit,
						Amount:     50,
						Currency:   "usd",
						OccurredAt: fixedClock{}.Now(),
					},
				}).Return(nil)
			},
			want: dto.WebhookResponse{Received: true, Type: stripe.EventPaymentIntentSucceeded},
		},
		{
			name: "acknowledges other events without publishing",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().ConstructEvent(payload, "sig").Return(stripe.Event{ID: "evt_2", Type: "charge.refunded"}, nil)
			},
			want: dto.WebhookResponse{Received: true, Type: "charge.refunded"},
		},
		{
			name: "rejects bad signature",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().ConstructEvent(payload, "sig").Return(stripe.Event{}, fmt.Errorf("%w: mismatch", stripe.ErrInvalidSignature))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing webhook secret is a server error",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().ConstructEvent(payload, "sig").Return(stripe.Event{}, stripe.ErrNotConfigured)
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "publish failure asks stripe to retry",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().ConstructEvent(payload, "sig").Return(stripe.Event{
					ID:      "evt_1",
					Type:    stripe.EventPaymentIntentSucceeded,
					Receipt: receipt,
				}, nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			got, err := f.svc.HandleWebhook(context.Background(), payload, "sig")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
