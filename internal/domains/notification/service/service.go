package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"cleanbook/config"
	"cleanbook/infras/kafka"
	"cleanbook/infras/mailer"
	"cleanbook/infras/otel"
	"cleanbook/infras/s3"
	bookingModel "cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/notification/model"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	"cleanbook/shared/timezone"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	subjectConfirmed      = "Home Booking Confirmation - %s"
	subjectAdminConfirmed = "New booking on %s at %s"
	subjectCanceled       = "Booking Canceled - %s"
)

// Dispatcher delivers booking side effects. Callers treat every error as
// informational: the booking state has already been committed.
type Dispatcher interface {
	BookingConfirmed(ctx context.Context, user userModel.User, booking bookingModel.Booking) error
	BookingCanceled(ctx context.Context, user userModel.User, booking bookingModel.Booking) error
	BookingDeleted(ctx context.Context, booking bookingModel.Booking) error
}

type dispatcherImpl struct {
	cfg    *config.Config
	mailer mailer.Mailer
	s3     s3.S3
	kafka  kafka.Client
	otel   otel.Otel
	clock  timezone.Clock
}

func New(cfg *config.Config, mailer mailer.Mailer, s3 s3.S3, kafka kafka.Client, otel otel.Otel, clock timezone.Clock) Dispatcher {
	return &dispatcherImpl{
		cfg:    cfg,
		mailer: mailer,
		s3:     s3,
		kafka:  kafka,
		otel:   otel,
		clock:  clock,
	}
}

func address(booking bookingModel.Booking) string {
	return fmt.Sprintf("%s, %s, %s %s", booking.ServiceAddress, booking.City, booking.State, booking.ZipCode)
}

func (d *dispatcherImpl) view(user userModel.User, booking bookingModel.Booking) emailView {
	return emailView{
		Company:   d.cfg.App.Name,
		FirstName: user.FirstName,
		Date:      booking.Date,
		Time:      booking.TimeLabel,
		Address:   address(booking),
		AddOns:    joinAddOns(booking.AddOns),
	}
}

func (d *dispatcherImpl) BookingConfirmed(ctx context.Context, user userModel.User, booking bookingModel.Booking) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingConfirmed")
	defer scope.End()
	defer scope.TraceIfError(err)

	var errs []error

	inviteURL, err := d.uploadInvite(ctx, booking)
	if err != nil {
		errs = append(errs, err)
	}

	view := d.view(user, booking)
	view.InviteURL = inviteURL

	if d.mailer.Enabled() {
		errs = append(errs, d.sendConfirmation(ctx, user, booking, view)...)
	}

	event := model.NewBookingEvent(constant.EventBookingCreated, booking, d.clock.Now())
	event.InviteURL = inviteURL

	if err := d.publish(ctx, event); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (d *dispatcherImpl) BookingCanceled(ctx context.Context, user userModel.User, booking bookingModel.Booking) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingCanceled")
	defer scope.End()
	defer scope.TraceIfError(err)

	var errs []error

	if err := d.removeInvite(ctx, booking); err != nil {
		errs = append(errs, err)
	}

	if d.mailer.Enabled() {
		html, err := render(cancellationTemplate, d.view(user, booking))
		if err != nil {
			errs = append(errs, err)
		} else if _, err := d.mailer.Send(ctx, mailer.Message{
			ToEmail: user.Email,
			ToName:  user.FullName(),
			Subject: fmt.Sprintf(subjectCanceled, d.cfg.App.Name),
			HTML:    html,
		}); err != nil {
			errs = append(errs, fmt.Errorf("failed to send cancellation email: %w", err))
		}
	}

	if err := d.publish(ctx, model.NewBookingEvent(constant.EventBookingCanceled, booking, d.clock.Now())); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (d *dispatcherImpl) BookingDeleted(ctx context.Context, booking bookingModel.Booking) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingDeleted")
	defer scope.End()
	defer scope.TraceIfError(err)

	return errors.Join(
		d.removeInvite(ctx, booking),
		d.publish(ctx, model.NewBookingEvent(constant.EventBookingDeleted, booking, d.clock.Now())),
	)
}

func (d *dispatcherImpl) sendConfirmation(ctx context.Context, user userModel.User, booking bookingModel.Booking, view emailView) []error {
	html, err := render(confirmationTemplate, view)
	if err != nil {
		return []error{err}
	}

	var errs []error

	messageID, err := d.mailer.Send(ctx, mailer.Message{
		ToEmail: user.Email,
		ToName:  user.FullName(),
		Subject: fmt.Sprintf(subjectConfirmed, d.cfg.App.Name),
		Text:    view.text(),
		HTML:    html,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to send confirmation email: %w", err))
	} else {
		log.Info().Str("booking_id", booking.ID).Str("message_id", messageID).Msg("booking confirmation sent")
	}

	if adminEmail := d.cfg.External.MailerSend.AdminEmail; adminEmail != "" {
		if _, err := d.mailer.Send(ctx, mailer.Message{
			ToEmail: adminEmail,
			Subject: fmt.Sprintf(subjectAdminConfirmed, booking.Date, booking.TimeLabel),
			Text:    view.text(),
			HTML:    html,
		}); err != nil {
			errs = append(errs, fmt.Errorf("failed to send admin copy: %w", err))
		}
	}

	return errs
}

func (d *dispatcherImpl) uploadInvite(ctx context.Context, booking bookingModel.Booking) (string, error) {
	now := d.clock.Now()

	invite, err := buildInvite(booking, d.cfg.App.Name, address(booking), now.Location(), now)
	if err != nil {
		return constant.Empty, err
	}

	url, err := d.s3.UploadFileBytes(ctx, constant.Empty, d.cfg.External.S3.InviteDirectory,
		model.InviteFileName(booking.ID), model.InviteContentType, invite)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload calendar invite: %w", err)
	}

	return url, nil
}

func (d *dispatcherImpl) removeInvite(ctx context.Context, booking bookingModel.Booking) error {
	err := d.s3.DeleteFile(ctx, constant.Empty, d.cfg.External.S3.InviteDirectory, model.InviteFileName(booking.ID))
	if err != nil {
		return fmt.Errorf("failed to delete calendar invite: %w", err)
	}

	return nil
}

func (d *dispatcherImpl) publish(ctx context.Context, event model.BookingEvent) error {
	err := d.kafka.SendMessages(ctx, d.cfg.Kafka.Topics.Booking, kafka.Message{Key: event.BookingID, Value: event})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}
