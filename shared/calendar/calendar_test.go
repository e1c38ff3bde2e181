package calendar_test

import (
	"cleanbook/shared/calendar"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "2025-07-04", want: true},
		{value: "2024-02-29", want: true},
		{value: "2025-02-29", want: false},
		{value: "2025-13-01", want: false},
		{value: "2025-7-4", want: false},
		{value: "07/04/2025", want: false},
		{value: " 2025-07-04", want: false},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.IsValidDate(tt.value))
		})
	}
}

func TestIsBeforeToday(t *testing.T) {
	now := time.Date(2025, 7, 4, 15, 0, 0, 0, time.UTC)

	assert.True(t, calendar.IsBeforeToday("2025-07-03", now))
	assert.False(t, calendar.IsBeforeToday("2025-07-04", now))
	assert.False(t, calendar.IsBeforeToday("2025-07-05", now))
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label      string
		wantHour   int
		wantMinute int
		wantOK     bool
	}{
		{label: "9 AM", wantHour: 9, wantOK: true},
		{label: "9 am", wantHour: 9, wantOK: true},
		{label: "2:30 PM", wantHour: 14, wantMinute: 30, wantOK: true},
		{label: "2:30PM", wantHour: 14, wantMinute: 30, wantOK: true},
		{label: "12 PM", wantHour: 12, wantOK: true},
		{label: "12 AM", wantHour: 0, wantOK: true},
		{label: "14:00", wantHour: 14, wantOK: true},
		{label: "  10 AM ", wantHour: 10, wantOK: true},
		{label: "morning", wantOK: false},
		{label: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			hour, minute, ok := calendar.ParseLabel(tt.label)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestNormalizeTimes(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "dedupes after trimming",
			input: []string{"9 AM", " 9 AM", "9 AM "},
			want:  []string{"9 AM"},
		},
		{
			name:  "drops blanks",
			input: []string{"", "  ", "10 AM"},
			want:  []string{"10 AM"},
		},
		{
			name:  "chronological order",
			input: []string{"2 PM", "10 AM", "9:30 AM", "12 PM"},
			want:  []string{"9:30 AM", "10 AM", "12 PM", "2 PM"},
		},
		{
			name:  "unparseable labels last",
			input: []string{"evening", "2 PM", "afternoon", "8 AM"},
			want:  []string{"8 AM", "2 PM", "afternoon", "evening"},
		},
		{
			name:  "empty input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.NormalizeTimes(tt.input))
		})
	}
}

func TestUnion(t *testing.T) {
	existing := []string{"9 AM", "2 PM"}

	got := calendar.Union(existing, []string{"10 AM", "9 AM"})

	assert.Equal(t, []string{"9 AM", "10 AM", "2 PM"}, got)
	assert.Equal(t, []string{"9 AM", "2 PM"}, existing)

	assert.Equal(t, got, calendar.Union(got, got))
}

func TestHoursUntil(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2025, 7, 2, 10, 0, 0, 0, loc)

	tests := []struct {
		name    string
		date    string
		label   string
		want    float64
		wantErr error
	}{
		{name: "thirty hours ahead", date: "2025-07-03", label: "4 PM", want: 30},
		{name: "ten hours ahead", date: "2025-07-02", label: "8 PM", want: 10},
		{name: "five hours ago", date: "2025-07-02", label: "5 AM", want: -5},
		{name: "label that is not a clock time", date: "2025-07-03", label: "morning", wantErr: calendar.ErrUnknownTime},
		{name: "invalid date", date: "07-03-2025", label: "9 AM", wantErr: calendar.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.HoursUntil(tt.date, tt.label, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}
