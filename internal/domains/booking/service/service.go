package service

import (
	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/infras/stripe"
	"cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/booking/model/dto"
	"cleanbook/internal/domains/booking/repository"
	notification "cleanbook/internal/domains/notification/service"
	userModel "cleanbook/internal/domains/user/model"
	userRepo "cleanbook/internal/domains/user/repository"
	"cleanbook/shared"
	"cleanbook/shared/actor"
	"cleanbook/shared/cache"
	"cleanbook/shared/calendar"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	"cleanbook/shared/pricing"
	"cleanbook/shared/servicearea"
	"cleanbook/shared/timezone"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultSideEffectTimeout = 10 * time.Second

const (
	msgNoPayment      = "No payment was made, so no refund is necessary."
	msgNoPaymentMade  = "No payment was made for this booking, so no refund is necessary."
	msgRefundIssued   = "Refund issued."
	msgRefundFailed   = "Refund could not be processed."
	msgWithinWindow   = "No refund as cancellation was within %g hours."
	msgCanceled       = "Booking canceled successfully."
	msgDeleted        = "Booking deleted successfully."
	msgBooked         = "Booking successful!"
	msgOutsideArea    = "service address is outside the service area"
	msgPastDate       = "you cannot select a past date, please choose a future date"
	msgPaymentPending = "payment has not been completed"
	msgPaymentUsed    = "payment is already attached to a booking"
)

var (
	ErrAlreadyBooked   = failure.Conflict("slot already booked")
	ErrNoAvailability  = failure.Unprocessable("no admin available for that date/time")
	ErrPastAppointment = failure.InvalidState("cannot cancel a past appointment")
	ErrPaymentUsed     = failure.Conflict(msgPaymentUsed)
)

// sortable maps the accepted sort_by values onto qualified columns.
var sortable = map[string]string{
	model.FieldDate:      model.TableName + "." + model.FieldDate,
	model.FieldCreatedAt: model.TableName + "." + model.FieldCreatedAt,
}

type Booking interface {
	Book(ctx context.Context, caller actor.Actor, req dto.BookRequest) (dto.BookResponse, error)
	UserBookings(ctx context.Context, caller actor.Actor) (dto.BookingsResponse, error)
	Cancel(ctx context.Context, caller actor.Actor, bookingID string) (dto.CancelResponse, error)
	Delete(ctx context.Context, caller actor.Actor, req dto.DeleteRequest) (dto.MessageResponse, error)
	All(ctx context.Context, caller actor.Actor, params gDto.QueryParams, filter dto.ListFilter) (dto.AllBookingsResponse, error)
	ByDate(ctx context.Context, caller actor.Actor, date string) (dto.BookingsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	userRepo   userRepo.User
	gateway    stripe.Gateway
	dispatcher notification.Dispatcher
	checker    servicearea.Checker
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	clock      timezone.Clock
}

func New(
	repo repository.Booking,
	userRepo userRepo.User,
	gateway stripe.Gateway,
	dispatcher notification.Dispatcher,
	checker servicearea.Checker,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock timezone.Clock,
) Booking {
	return &serviceImpl{
		repo:       repo,
		userRepo:   userRepo,
		gateway:    gateway,
		dispatcher: dispatcher,
		checker:    checker,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		clock:      clock,
	}
}

func (s *serviceImpl) sideEffectTimeout() time.Duration {
	if seconds := s.cfg.App.Booking.SideEffectTimeoutSeconds; seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultSideEffectTimeout
}

// afterCommit runs fn detached from the request with a bounded deadline.
// Its failure is logged and never reaches the caller.
func (s *serviceImpl) afterCommit(ctx context.Context, name string, fn func(ctx context.Context) error) {
	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout())
		defer cancel()

		if err := fn(c); err != nil {
			log.Warn().Err(err).Str("side_effect", name).Msg("booking side effect failed")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, booking model.Booking) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(constant.CacheKeyUserBookings, booking.UserID))
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(constant.CacheKeyBookingsOnDate, booking.Date))
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyAvailability)
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(constant.CacheKeyAvailabilityOf, booking.AdminID))
}

func (s *serviceImpl) getUser(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return user, failure.NotFound("user not found")
	}

	return user, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

// resolvePayment loads and checks the receipt before anything is written.
func (s *serviceImpl) resolvePayment(ctx context.Context, paymentID string) (*stripe.Receipt, error) {
	if paymentID == "" {
		return nil, nil
	}

	used, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldPaymentID, Operator: gDto.FilterOperatorEq, Value: paymentID, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check payment usage")

		return nil, fmt.Errorf("failed to check payment usage: %w", err)
	}

	if used {
		return nil, ErrPaymentUsed
	}

	receipt, err := s.gateway.Receipt(ctx, paymentID)
	if err != nil {
		log.Error().Err(err).Str("payment_id", paymentID).Msg("failed to retrieve payment")

		return nil, failure.Upstream("failed to verify payment")
	}

	if !receipt.Succeeded() {
		return nil, failure.BadRequestFromString(msgPaymentPending)
	}

	return &receipt, nil
}

func (s *serviceImpl) Book(ctx context.Context, caller actor.Actor, req dto.BookRequest) (res dto.BookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return res, failure.Unauthorized("authentication required")
	}

	date, timeLabel := req.Date(), req.Time()
	scope.SetAttributes(map[string]any{"booking.date": date, "booking.time": timeLabel})

	if !calendar.IsValidDate(date) {
		return res, failure.BadRequest(calendar.ErrInvalidDate)
	}

	if timeLabel == "" {
		return res, failure.BadRequestFromString("time is required")
	}

	if calendar.IsBeforeToday(date, s.clock.Now()) {
		return res, failure.BadRequestFromString(msgPastDate)
	}

	user, err := s.getUser(ctx, caller.ID)
	if err != nil {
		return res, err
	}

	if !s.checker.IsWithinServiceArea(user.ZipCode) {
		return res, failure.BadRequestFromString(msgOutsideArea)
	}

	receipt, err := s.resolvePayment(ctx, req.PaymentID)
	if err != nil {
		return res, err
	}

	candidates, err := s.repo.Candidates(ctx, date, timeLabel)
	if err != nil {
		log.Error().Err(err).Msg("failed to find available admin")

		return res, fmt.Errorf("failed to find available admin: %w", err)
	}

	if len(candidates) == 0 {
		return res, ErrNoAvailability
	}

	booking := req.ToModel(user, candidates[0], receipt, s.clock.Now())
	scope.AddEvent("admin selected", map[string]any{"admin.id": booking.AdminID, "candidates": len(candidates)})

	if err = s.repo.Claim(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			log.Info().Str("date", date).Str("time", timeLabel).Str("admin_id", booking.AdminID).Msg("slot lost to a concurrent claim")

			return res, ErrAlreadyBooked
		}

		if errors.Is(err, repository.ErrPaymentUsed) {
			return res, ErrPaymentUsed
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("admin_id", booking.AdminID).Msg("booking created")

	s.afterCommit(ctx, constant.EventBookingCreated, func(c context.Context) error {
		s.invalidate(c, booking)

		return s.dispatcher.BookingConfirmed(c, user, booking)
	})

	res.Message = msgBooked
	res.Booking.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UserBookings(ctx context.Context, caller actor.Actor) (res dto.BookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UserBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return res, failure.Unauthorized("authentication required")
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyUserBookings, caller.ID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for user bookings")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: sortable[model.FieldDate], SortDir: gDto.SortDirDesc}

	bookings, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: caller.ID, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	res.Bookings = dto.FromModels(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, caller actor.Actor, bookingID string) (res dto.CancelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return res, failure.Unauthorized("authentication required")
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.UserID != caller.ID {
		return res, failure.Forbidden("you can only cancel your own bookings")
	}

	// An appointment without a resolvable instant can always be canceled and
	// is never refunded.
	hours, err := calendar.HoursUntil(booking.Date, booking.TimeLabel, s.clock.Now())
	scheduled := err == nil

	if !scheduled {
		log.Warn().Err(err).Str("booking_id", booking.ID).Str("time", booking.TimeLabel).Msg("appointment time is not resolvable")
	}

	if scheduled && hours < 0 {
		return res, ErrPastAppointment
	}

	if err = s.remove(ctx, booking); err != nil {
		return res, err
	}

	window := s.cfg.App.Booking.RefundWindowHours
	eligible := scheduled && hours > window

	scope.SetAttributes(map[string]any{"booking.id": booking.ID, "hours_until": hours, "refund_eligible": eligible})

	res.Message = msgCanceled

	switch {
	case !eligible:
		res.Refund = fmt.Sprintf(msgWithinWindow, window)
	case booking.HasPayment():
		res.Refund = msgRefundIssued
	default:
		res.Refund = msgNoPayment
	}

	if !booking.HasPayment() {
		res.RefundResponse = &dto.RefundResponse{Message: msgNoPaymentMade}
	} else if eligible {
		res.RefundResponse = s.refund(ctx, booking)
		if res.RefundResponse.Error != "" {
			res.Refund = msgRefundFailed
		}
	}

	log.Info().Str("booking_id", booking.ID).Float64("hours_until", hours).Bool("refund_eligible", eligible).Msg("booking canceled")

	s.afterCommit(ctx, constant.EventBookingCanceled, func(c context.Context) error {
		s.invalidate(c, booking)

		user, err := s.getUser(c, booking.UserID)
		if err != nil {
			return err
		}

		return s.dispatcher.BookingCanceled(c, user, booking)
	})

	return res, nil
}

// refund runs after the booking is gone. Its failure is reported in the
// payload, not as an error.
func (s *serviceImpl) refund(ctx context.Context, booking model.Booking) *dto.RefundResponse {
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout())
	defer cancel()

	outcome, err := s.gateway.Refund(c, *booking.PaymentID, pricing.ToMinorUnits(booking.AmountPaid))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("payment_id", *booking.PaymentID).Msg("failed to process refund")

		return &dto.RefundResponse{Error: err.Error()}
	}

	res := &dto.RefundResponse{}
	res.FromOutcome(outcome)

	return res
}

func (s *serviceImpl) remove(ctx context.Context, booking model.Booking) error {
	deleted, err := s.repo.DeleteAffected(ctx, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound("booking not found")
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, caller actor.Actor, req dto.DeleteRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !caller.IsAdmin() {
		return res, failure.Forbidden("only admins can delete bookings")
	}

	booking, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	if err = s.remove(ctx, booking); err != nil {
		return res, err
	}

	log.Info().Str("booking_id", booking.ID).Str("deleted_by", caller.ID).Msg("booking deleted")

	s.afterCommit(ctx, constant.EventBookingDeleted, func(c context.Context) error {
		s.invalidate(c, booking)

		return s.dispatcher.BookingDeleted(c, booking)
	})

	return dto.MessageResponse{Message: msgDeleted}, nil
}

func (s *serviceImpl) All(ctx context.Context, caller actor.Actor, params gDto.QueryParams, filter dto.ListFilter) (res dto.AllBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.All")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !caller.IsAdmin() {
		return res, failure.Forbidden("only admins can view all bookings")
	}

	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return res, failure.BadRequestFromString("from must not be after to")
	}

	where := filter.FilterGroup()

	column, ok := sortable[params.SortBy]
	if !ok {
		column = sortable[model.FieldDate]
	}

	params.SortBy = column
	if params.SortDir == "" {
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.CountDetails(ctx, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	details, err := s.repo.Details(ctx, params, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(details, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) ByDate(ctx context.Context, caller actor.Actor, date string) (res dto.BookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ByDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !caller.IsAdmin() {
		return res, failure.Forbidden("only admins can view bookings by date")
	}

	if !calendar.IsValidDate(date) {
		return res, failure.BadRequest(calendar.ErrInvalidDate)
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyBookingsOnDate, date)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldTimeLabel, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldDate, Operator: gDto.FilterOperatorEq, Value: date, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by date")

		return res, fmt.Errorf("failed to get bookings by date: %w", err)
	}

	res.Bookings = dto.FromModels(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings by date to cache")
		}
	}()

	return res, nil
}
