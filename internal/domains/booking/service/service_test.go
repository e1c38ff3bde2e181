package service_test

import (
	"cleanbook/config"
	"cleanbook/infras/otel/mocks"
	"cleanbook/infras/stripe"
	stripeMocks "cleanbook/infras/stripe/mocks"
	bookingMocks "cleanbook/internal/domains/booking/mocks"
	"cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/booking/model/dto"
	"cleanbook/internal/domains/booking/repository"
	"cleanbook/internal/domains/booking/service"
	notificationMocks "cleanbook/internal/domains/notification/mocks"
	userMocks "cleanbook/internal/domains/user/mocks"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/actor"
	cacheMocks "cleanbook/shared/cache/mocks"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	gModel "cleanbook/shared/model"
	areaMocks "cleanbook/shared/servicearea/mocks"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	errCacheMiss = errors.New("cache miss")
	customer     = actor.Actor{ID: "user-1", Email: "jane@example.com", Role: constant.RoleUser}
	stranger     = actor.Actor{ID: "user-2", Email: "sam@example.com", Role: constant.RoleUser}
	admin        = actor.Actor{ID: "admin-1", Email: "kim@example.com", Role: constant.RoleAdmin}
)

// fixedClock pins "now" to 2025-07-01 09:00 UTC.
type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc        service.Booking
	cfg        *config.Config
	repo       *bookingMocks.MockBooking
	users      *userMocks.MockUser
	gateway    *stripeMocks.MockGateway
	dispatcher *notificationMocks.MockDispatcher
	checker    *areaMocks.MockChecker
	cache      *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		users:      userMocks.NewMockUser(ctrl),
		gateway:    stripeMocks.NewMockGateway(ctrl),
		dispatcher: notificationMocks.NewMockDispatcher(ctrl),
		checker:    areaMocks.NewMockChecker(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.dispatcher.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.dispatcher.EXPECT().BookingCanceled(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.dispatcher.EXPECT().BookingDeleted(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.App.Booking.RefundWindowHours = 24
	cfg.App.Booking.SideEffectTimeoutSeconds = 1

	f.cfg = cfg
	f.svc = service.New(f.repo, f.users, f.gateway, f.dispatcher, f.checker, cfg, f.cache, mocks.NewOtel(), fixedClock{})

	return f
}

func sampleUser() userModel.User {
	return userModel.User{
		ID:             "user-1",
		Email:          "jane@example.com",
		FirstName:      "Jane",
		LastName:       "Doe",
		ServiceAddress: "1 Main St",
		City:           "Austin",
		State:          "TX",
		ZipCode:        "78701",
		Role:           constant.RoleUser,
	}
}

func sampleBooking(date, label, paymentID string) model.Booking {
	booking := model.Booking{
		ID:             "booking-1",
		UserID:         "user-1",
		AdminID:        "admin-1",
		Date:           date,
		TimeLabel:      label,
		ServiceAddress: "1 Main St",
		City:           "Austin",
		State:          "TX",
		ZipCode:        "78701",
		Metadata:       gModel.NewMetadata("user-1", fixedClock{}.Now()),
	}

	if paymentID != "" {
		booking.PaymentID = &paymentID
		booking.AmountPaid = 50
	}

	return booking
}

func bookRequest(date, label string) dto.BookRequest {
	return dto.BookRequest{SelectedDate: date, SelectedTime: label, AddOns: []byte(`["ovenCleaning", " ", "ovenCleaning"]`)}
}

func TestBookingService_Book(t *testing.T) {
	tests := []struct {
		name      string
		caller    actor.Actor
		req       dto.BookRequest
		setupMock func(f fixture)
		check     func(t *testing.T, res dto.BookResponse)
		wantErr   error
		wantCode  int
	}{
		{
			name:   "claims the first candidate admin",
			caller: customer,
			req:    bookRequest("2025-07-04", " 10 AM "),
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea("78701").Return(true)
				f.repo.EXPECT().Candidates(gomock.Any(), "2025-07-04", "10 AM").Return([]string{"admin-1", "admin-2"}, nil)
				f.repo.EXPECT().Claim(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
					if booking.AdminID != "admin-1" || booking.TimeLabel != "10 AM" || booking.UserID != "user-1" {
						return errors.New("unexpected booking")
					}

					return nil
				})
			},
			check: func(t *testing.T, res dto.BookResponse) {
				assert.Equal(t, "admin-1", res.Booking.AdminID)
				assert.Equal(t, "2025-07-04", res.Booking.Date)
				assert.Equal(t, "10 AM", res.Booking.Time)
				assert.Equal(t, "1 Main St", res.Booking.ServiceAddress)
				assert.Equal(t, []string{"ovenCleaning"}, res.Booking.AddOns)
				assert.Nil(t, res.Booking.PaymentID)
				assert.Zero(t, res.Booking.AmountPaid)
			},
		},
		{
			name:   "attaches a verified payment",
			caller: customer,
			req: dto.BookRequest{
				SelectedDate: "2025-07-04",
				SelectedTime: "10 AM",
				AddOns:       []byte(`{"oven": true}`),
				PaymentID:    "pi_1",
			},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.gateway.EXPECT().Receipt(gomock.Any(), "pi_1").Return(stripe.Receipt{ID: "pi_1", Status: "succeeded", AmountReceived: 5000}, nil)
				f.repo.EXPECT().Candidates(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"admin-1"}, nil)
				f.repo.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.BookResponse) {
				require.NotNil(t, res.Booking.PaymentID)
				assert.Equal(t, "pi_1", *res.Booking.PaymentID)
				assert.InDelta(t, 50.0, res.Booking.AmountPaid, 0.001)
				assert.Equal(t, []string{}, res.Booking.AddOns)
			},
		},
		{
			name:      "anonymous caller",
			caller:    actor.Actor{},
			req:       bookRequest("2025-07-04", "10 AM"),
			setupMock: func(f fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "malformed date",
			caller:    customer,
			req:       bookRequest("2025-7-4", "10 AM"),
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "past date",
			caller:    customer,
			req:       bookRequest("2025-06-30", "10 AM"),
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "blank time",
			caller:    customer,
			req:       bookRequest("2025-07-04", "   "),
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			caller: customer,
			req:    bookRequest("2025-07-04", "10 AM"),
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "outside service area",
			caller: customer,
			req:    bookRequest("2025-07-04", "10 AM"),
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea("78701").Return(false)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "payment provider failure creates nothing",
			caller: customer,
			req:    dto.BookRequest{SelectedDate: "2025-07-04", SelectedTime: "10 AM", PaymentID: "pi_1"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.gateway.EXPECT().Receipt(gomock.Any(), "pi_1").Return(stripe.Receipt{}, errors.New("timeout"))
			},
			wantCode: http.StatusBadGateway,
		},
		{
			name:   "payment already used",
			caller: customer,
			req:    dto.BookRequest{SelectedDate: "2025-07-04", SelectedTime: "10 AM", PaymentID: "pi_1"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "payment not completed",
			caller: customer,
			req:    dto.BookRequest{SelectedDate: "2025-07-04", SelectedTime: "10 AM", PaymentID: "pi_1"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.gateway.EXPECT().Receipt(gomock.Any(), "pi_1").Return(stripe.Receipt{ID: "pi_1", Status: "requires_payment_method"}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "no admin has the slot",
			caller: customer,
			req:    bookRequest("2025-07-04", "10 AM"),
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Candidates(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{}, nil)
			},
			wantErr: service.ErrNoAvailability,
		},
		{
			name:   "lost race surfaces as conflict",
			caller: customer,
			req:    bookRequest("2025-07-04", "10 AM"),
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Candidates(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"admin-1"}, nil)
				f.repo.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(repository.ErrSlotTaken)
			},
			wantErr: service.ErrAlreadyBooked,
		},
		{
			name:   "payment taken by a concurrent booking",
			caller: customer,
			req:    bookRequest("2025-07-04", "10 AM"),
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Candidates(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"admin-1"}, nil)
				f.repo.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(repository.ErrPaymentUsed)
			},
			wantErr: service.ErrPaymentUsed,
		},
		{
			name:   "storage failure is internal",
			caller: customer,
			req:    bookRequest("2025-07-04", "10 AM"),
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
				f.checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
				f.repo.EXPECT().Candidates(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"admin-1"}, nil)
				f.repo.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Book(context.Background(), tt.caller, tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				tt.check(t, res)
			}
		})
	}
}

func TestBookingService_BookNotifiesAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	users := userMocks.NewMockUser(ctrl)
	dispatcher := notificationMocks.NewMockDispatcher(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	checker := areaMocks.NewMockChecker(ctrl)

	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil)
	checker.EXPECT().IsWithinServiceArea(gomock.Any()).Return(true)
	repo.EXPECT().Candidates(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"admin-1"}, nil)

	committed := false
	repo.EXPECT().Claim(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, model.Booking) error {
		committed = true

		return nil
	})

	notified := make(chan model.Booking, 1)
	dispatcher.EXPECT().BookingConfirmed(gomock.Any(), sampleUser(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ userModel.User, booking model.Booking) error {
			notified <- booking

			return errors.New("mail provider down")
		})

	svc := service.New(repo, users, nil, dispatcher, checker, &config.Config{}, cache, mocks.NewOtel(), fixedClock{})

	res, err := svc.Book(context.Background(), customer, bookRequest("2025-07-04", "10 AM"))
	require.NoError(t, err)
	assert.True(t, committed)

	select {
	case booking := <-notified:
		assert.Equal(t, res.Booking.ID, booking.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation was not dispatched")
	}
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name       string
		caller     actor.Actor
		booking    model.Booking
		setupMock  func(f fixture)
		wantCode   int
		wantErr    error
		wantRefund string
		check      func(t *testing.T, res dto.CancelResponse)
	}{
		{
			name:    "thirty hours ahead with payment refunds once",
			caller:  customer,
			booking: sampleBooking("2025-07-02", "3 PM", "pi_1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.gateway.EXPECT().Refund(gomock.Any(), "pi_1", int64(5000)).
					Return(stripe.RefundOutcome{ID: "re_1", Status: "succeeded", Amount: 5000}, nil).Times(1)
			},
			wantRefund: "Refund issued.",
			check: func(t *testing.T, res dto.CancelResponse) {
				require.NotNil(t, res.RefundResponse)
				assert.Equal(t, "re_1", res.RefundResponse.ID)
				assert.Equal(t, int64(5000), res.RefundResponse.Amount)
			},
		},
		{
			name:    "ten hours ahead deletes without refund",
			caller:  customer,
			booking: sampleBooking("2025-07-01", "7 PM", "pi_1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			wantRefund: "No refund as cancellation was within 24 hours.",
			check: func(t *testing.T, res dto.CancelResponse) {
				assert.Nil(t, res.RefundResponse)
			},
		},
		{
			name:    "exactly at the window boundary is not refunded",
			caller:  customer,
			booking: sampleBooking("2025-07-02", "9 AM", "pi_1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			wantRefund: "No refund as cancellation was within 24 hours.",
		},
		{
			name:    "thirty hours ahead without payment",
			caller:  customer,
			booking: sampleBooking("2025-07-02", "3 PM", ""),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			wantRefund: "No payment was made, so no refund is necessary.",
			check: func(t *testing.T, res dto.CancelResponse) {
				require.NotNil(t, res.RefundResponse)
				assert.NotEmpty(t, res.RefundResponse.Message)
			},
		},
		{
			name:    "refund failure is informational",
			caller:  customer,
			booking: sampleBooking("2025-07-02", "3 PM", "pi_1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.gateway.EXPECT().Refund(gomock.Any(), "pi_1", int64(5000)).Return(stripe.RefundOutcome{}, errors.New("card expired"))
			},
			wantRefund: "Refund could not be processed.",
			check: func(t *testing.T, res dto.CancelResponse) {
				require.NotNil(t, res.RefundResponse)
				assert.Equal(t, "card expired", res.RefundResponse.Error)
			},
		},
		{
			name:    "same-day label that is not a clock time is canceled without refund",
			caller:  customer,
			booking: sampleBooking("2025-07-01", "Afternoon", "pi_1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			wantRefund: "No refund as cancellation was within 24 hours.",
			check: func(t *testing.T, res dto.CancelResponse) {
				assert.Nil(t, res.RefundResponse)
			},
		},
		{
			name:    "far-future label that is not a clock time is not refunded",
			caller:  customer,
			booking: sampleBooking("2025-07-03", "Evening", "pi_1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			wantRefund: "No refund as cancellation was within 24 hours.",
			check: func(t *testing.T, res dto.CancelResponse) {
				assert.Nil(t, res.RefundResponse)
			},
		},
		{
			name:      "five hours ago is rejected and kept",
			caller:    customer,
			booking:   sampleBooking("2025-07-01", "4 AM", "pi_1"),
			setupMock: func(f fixture) {},
			wantErr:   service.ErrPastAppointment,
		},
		{
			name:      "someone else's booking",
			caller:    stranger,
			booking:   sampleBooking("2025-07-02", "3 PM", ""),
			setupMock: func(f fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "missing booking",
			caller:    customer,
			booking:   model.Booking{},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:    "deleted concurrently",
			caller:  customer,
			booking: sampleBooking("2025-07-02", "3 PM", ""),
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)
			f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil).AnyTimes()
			tt.setupMock(f)

			res, err := f.svc.Cancel(context.Background(), tt.caller, "booking-1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, "Booking canceled successfully.", res.Message)
				assert.Equal(t, tt.wantRefund, res.Refund)

				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestBookingService_CancelWithZeroRefundWindow(t *testing.T) {
	f := newFixture(t)
	f.cfg.App.Booking.RefundWindowHours = 0

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking("2025-07-01", "11 AM", "pi_1"), nil)
	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleUser(), nil).AnyTimes()
	f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.gateway.EXPECT().Refund(gomock.Any(), "pi_1", int64(5000)).
		Return(stripe.RefundOutcome{ID: "re_2", Status: "succeeded", Amount: 5000}, nil).Times(1)

	res, err := f.svc.Cancel(context.Background(), customer, "booking-1")
	require.NoError(t, err)

	assert.Equal(t, "Refund issued.", res.Refund)
	require.NotNil(t, res.RefundResponse)
	assert.Equal(t, "re_2", res.RefundResponse.ID)
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		caller    actor.Actor
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:   "admin removes unconditionally",
			caller: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking("2025-06-01", "9 AM", "pi_1"), nil)
				f.repo.EXPECT().DeleteAffected(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
		},
		{
			name:      "customer is forbidden",
			caller:    customer,
			setupMock: func(f fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:   "missing booking",
			caller: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Delete(context.Background(), tt.caller, dto.DeleteRequest{BookingID: "booking-1"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Booking deleted successfully.", res.Message)
		})
	}
}

func TestBookingService_UserBookings(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "booking:user:user-1", gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().GetAll(gomock.Any(), gdtoSorted("bookings.date", gDto.SortDirDesc), gomock.Any()).
		Return([]model.Booking{sampleBooking("2025-07-04", "10 AM", "")}, nil)

	res, err := f.svc.UserBookings(context.Background(), customer)
	require.NoError(t, err)

	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "10 AM", res.Bookings[0].Time)
	assert.Equal(t, []string{}, res.Bookings[0].AddOns)
}

func TestBookingService_All(t *testing.T) {
	paidOnly := true

	tests := []struct {
		name     string
		caller    actor.Actor
		params    gDto.QueryParams
		filter    dto.ListFilter
		wantSort  string
		wantWhere string
		wantCode  int
	}{
		{
			name:     "whitelisted sort column",
			caller:   admin,
			params:   gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: gDto.SortDirAsc},
			wantSort: "bookings.created_at",
		},
		{
			name:     "unknown sort column falls back to date",
			caller:   admin,
			params:   gDto.QueryParams{Page: 1, Limit: 10, SortBy: "1; DROP TABLE bookings"},
			wantSort: "bookings.date",
		},
		{
			name:     "customer is forbidden",
			caller:   customer,
			wantCode: http.StatusForbidden,
		},
		{
			name:      "date range and paid only",
			caller:    admin,
			params:    gDto.QueryParams{Page: 1, Limit: 10},
			filter:    dto.ListFilter{From: "2025-07-01", To: "2025-07-31", Paid: &paidOnly},
			wantSort:  "bookings.date",
			wantWhere: "(bookings.date >= :date_from AND bookings.date <= :date_to AND bookings.payment_id IS NOT NULL)",
		},
		{
			name:     "inverted date range",
			caller:   admin,
			filter:   dto.ListFilter{From: "2025-08-01", To: "2025-07-01"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.wantCode == 0 {
				f.repo.EXPECT().CountDetails(gomock.Any(), gomock.Any()).Return(12, nil)
				f.repo.EXPECT().Details(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
						assert.Equal(t, tt.wantSort, params.SortBy)

						if tt.wantWhere != "" {
							where, _ := filter.GetWhereClause()
							assert.Equal(t, tt.wantWhere, where)
						}

						return []model.Detail{{
							Booking:        sampleBooking("2025-07-04", "10 AM", ""),
							OwnerFirstName: "Jane",
							OwnerLastName:  "Doe",
							OwnerEmail:     "jane@example.com",
						}}, nil
					})
			}

			res, err := f.svc.All(context.Background(), tt.caller, tt.params, tt.filter)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 12, res.TotalData)
			assert.Equal(t, 2, res.TotalPage)
			require.Len(t, res.Bookings, 1)
			assert.Equal(t, "Jane", res.Bookings[0].Owner.FirstName)
			assert.Equal(t, "jane@example.com", res.Bookings[0].Owner.Email)
		})
	}
}

func TestBookingService_ByDate(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "booking:date:2025-07-04", gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{sampleBooking("2025-07-04", "10 AM", "")}, nil)

	res, err := f.svc.ByDate(context.Background(), admin, "2025-07-04")
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)

	_, err = f.svc.ByDate(context.Background(), admin, "July 4")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func gdtoSorted(column, dir string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		params, ok := x.(gDto.QueryParams)

		return ok && params.SortBy == column && params.SortDir == dir
	})
}
