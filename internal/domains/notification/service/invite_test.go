package service

import (
	bookingModel "cleanbook/internal/domains/booking/model"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvite(t *testing.T) {
	loc := time.FixedZone("CDT", -5*60*60)
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, loc)

	booking := bookingModel.Booking{
		ID:        "booking-1",
		Date:      "2025-07-04",
		TimeLabel: "2:30 PM",
		AddOns:    []string{"windowCleaning", "ovenCleaning"},
	}

	invite, err := buildInvite(booking, "Acme", "1 Main St Austin TX 78701", loc, now)
	require.NoError(t, err)

	body := string(invite)

	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, body, "METHOD:REQUEST")
	assert.Contains(t, body, "UID:booking-1")
	assert.Contains(t, body, "DTSTART:20250704T193000Z")
	assert.Contains(t, body, "DTEND:20250704T223000Z")
	assert.Contains(t, body, "DTSTAMP:20250701T140000Z")
	assert.Contains(t, body, "LOCATION:1 Main St Austin TX 78701")
	assert.Contains(t, body, "END:VCALENDAR")
}

func TestBuildInviteFoldsLongLines(t *testing.T) {
	addOns := make([]string, 0, 12)
	for range 12 {
		addOns = append(addOns, "insideCabinetsAndDrawers")
	}

	booking := bookingModel.Booking{ID: "booking-1", Date: "2025-07-04", TimeLabel: "9 AM", AddOns: addOns}
	address := strings.Repeat("Suite 100 Long Commercial Plaza Building ", 4)

	invite, err := buildInvite(booking, "Acme", address, time.UTC, time.Now())
	require.NoError(t, err)

	for line := range strings.SplitSeq(strings.TrimRight(string(invite), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75, line)
	}

	unfolded := strings.ReplaceAll(string(invite), "\r\n ", "")
	assert.Contains(t, unfolded, "insideCabinetsAndDrawers")
	assert.Contains(t, unfolded, "Long Commercial Plaza Building")
}

func TestBuildInviteAllDayForUnknownTime(t *testing.T) {
	booking := bookingModel.Booking{ID: "booking-1", Date: "2025-07-04", TimeLabel: "Afternoon"}

	invite, err := buildInvite(booking, "Acme", "1 Main St", time.UTC, time.Now())
	require.NoError(t, err)

	body := string(invite)

	assert.Contains(t, body, "DTSTART;VALUE=DATE:20250704")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20250705")
}

func TestBuildInviteRejectsBadDate(t *testing.T) {
	_, err := buildInvite(bookingModel.Booking{ID: "b", Date: "07/04/2025", TimeLabel: "9 AM"}, "Acme", "", time.UTC, time.Now())

	assert.Error(t, err)
}

func TestRenderEscapesHTML(t *testing.T) {
	html, err := render(confirmationTemplate, emailView{Company: "Acme", FirstName: "<script>", AddOns: "None"})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
