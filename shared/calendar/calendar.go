// Package calendar handles the date keys and free-form time labels used by
// availability entries and bookings.
//
// Dates are always "YYYY-MM-DD". Time labels are whatever an admin typed
// ("9 AM", "2:30 PM", "14:00"); they are compared as trimmed strings and
// ordered chronologically when they can be read as a clock time.
package calendar

import (
	"cleanbook/shared/constant"
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
	ErrUnknownTime = errors.New("time label is not a clock time")
)

var labelLayouts = []string{
	"3:04 PM",
	"3 PM",
	"3:04PM",
	"3PM",
	"15:04",
}

// ParseDate reads a strict YYYY-MM-DD date at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(constant.CalendarLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return date, nil
}

// IsValidDate reports whether value is a real calendar date in YYYY-MM-DD form.
func IsValidDate(value string) bool {
	_, err := ParseDate(value, time.UTC)

	return err == nil
}

// IsBeforeToday reports whether date falls on an earlier day than now.
func IsBeforeToday(date string, now time.Time) bool {
	return date < now.Format(constant.CalendarLayout)
}

// ParseLabel reads a time label as a clock time.
func ParseLabel(label string) (hour, minute int, ok bool) {
	normalized := strings.ToUpper(strings.TrimSpace(label))

	for _, layout := range labelLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err == nil {
			return parsed.Hour(), parsed.Minute(), true
		}
	}

	return 0, 0, false
}

// NormalizeTimes trims labels, drops blanks and duplicates, and sorts the result.
func NormalizeTimes(times []string) []string {
	seen := make(map[string]struct{}, len(times))
	result := make([]string, 0, len(times))

	for _, label := range times {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		result = append(result, label)
	}

	SortTimes(result)

	return result
}

// Union merges incoming labels into existing ones as a set.
func Union(existing, incoming []string) []string {
	merged := make([]string, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	merged = append(merged, incoming...)

	return NormalizeTimes(merged)
}

// SortTimes orders labels chronologically. Labels that are not clock times
// sort after all clock times, lexically among themselves.
func SortTimes(times []string) {
	slices.SortStableFunc(times, compareLabels)
}

func compareLabels(a, b string) int {
	aHour, aMinute, aOK := ParseLabel(a)
	bHour, bMinute, bOK := ParseLabel(b)

	switch {
	case aOK && bOK:
		aMinutes := aHour*60 + aMinute
		bMinutes := bHour*60 + bMinute

		if aMinutes != bMinutes {
			return aMinutes - bMinutes
		}

		return strings.Compare(a, b)
	case aOK:
		return -1
	case bOK:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// AppointmentTime combines a date and a time label into an instant in loc.
// A label that is not a clock time returns the day with ErrUnknownTime.
func AppointmentTime(date, label string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute, ok := ParseLabel(label)
	if !ok {
		return day, ErrUnknownTime
	}

	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}

// HoursUntil returns the signed number of hours from now to the appointment.
// It fails with ErrInvalidDate or ErrUnknownTime when the pair is not an instant.
func HoursUntil(date, label string, now time.Time) (float64, error) {
	appointment, err := AppointmentTime(date, label, now.Location())
	if err != nil {
		return 0, err
	}

	return appointment.Sub(now).Hours(), nil
}
