package service

import (
	bookingModel "cleanbook/internal/domains/booking/model"
	"cleanbook/shared/calendar"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

const appointmentDuration = 3 * time.Hour

// buildInvite renders a single-event iCalendar document for the booking.
// The appointment starts at the labelled time in loc; a label that is not a
// clock time becomes an all-day event on the booked date.
func buildInvite(booking bookingModel.Booking, company, address string, loc *time.Location, now time.Time) ([]byte, error) {
	start, err := calendar.AppointmentTime(booking.Date, booking.TimeLabel, loc)
	if err != nil && !errors.Is(err, calendar.ErrUnknownTime) {
		return nil, fmt.Errorf("failed to resolve appointment time: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetProductId("-//" + company + "//Booking//EN")
	cal.SetMethod(ics.MethodRequest)

	event := cal.AddEvent(booking.ID)
	event.SetDtStampTime(now)
	event.SetStatus(ics.ObjectStatusConfirmed)
	event.SetSummary(company + " cleaning appointment")
	event.SetLocation(address)
	event.SetDescription("Add-ons: " + joinAddOns(booking.AddOns))

	if errors.Is(err, calendar.ErrUnknownTime) {
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
	} else {
		event.SetStartAt(start)
		event.SetEndAt(start.Add(appointmentDuration))
	}

	return []byte(cal.Serialize()), nil
}
