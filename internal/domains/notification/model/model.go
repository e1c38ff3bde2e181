package model

import (
	bookingModel "cleanbook/internal/domains/booking/model"
	"time"
)

const (
	InviteContentType = "text/calendar; charset=utf-8"
	InviteExtension   = ".ics"
)

// BookingEvent is the payload published on the booking topic.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	AdminID    string    `json:"adminId"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	AddOns     []string  `json:"addOns"`
	PaymentID  string    `json:"paymentId,omitempty"`
	AmountPaid float64   `json:"amountPaid"`
	InviteURL  string    `json:"inviteUrl,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, booking bookingModel.Booking, occurredAt time.Time) BookingEvent {
	event := BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		AdminID:    booking.AdminID,
		Date:       booking.Date,
		Time:       booking.TimeLabel,
		AddOns:     booking.AddOns,
		AmountPaid: booking.AmountPaid,
		OccurredAt: occurredAt,
	}

	if event.AddOns == nil {
		event.AddOns = []string{}
	}

	if booking.HasPayment() {
		event.PaymentID = *booking.PaymentID
	}

	return event
}

func InviteFileName(bookingID string) string {
	return bookingID + InviteExtension
}
