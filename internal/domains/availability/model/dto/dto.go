package dto

import (
	"cleanbook/internal/domains/availability/model"
	"cleanbook/shared/calendar"
	"cleanbook/shared/failure"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// SetRequest carries a date keyed map of time labels. Values stay raw so that
// a non-array value can be reported against its date.
type SetRequest struct {
	Availability map[string]json.RawMessage `json:"availability"`
}

// Entries validates the request and returns normalized entries ordered by date.
func (r *SetRequest) Entries() ([]model.Entry, error) {
	if r.Availability == nil {
		return nil, failure.BadRequestFromString("invalid format, availability should be an object with date keys and time arrays")
	}

	dates := make([]string, 0, len(r.Availability))
	for date := range r.Availability {
		dates = append(dates, date)
	}

	slices.Sort(dates)

	entries := make([]model.Entry, 0, len(dates))

	for _, date := range dates {
		if !calendar.IsValidDate(date) {
			return nil, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %s", date))
		}

		var times []string
		if err := json.Unmarshal(r.Availability[date], &times); err != nil || times == nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("invalid time array for %s", date))
		}

		entries = append(entries, model.Entry{Date: date, Times: calendar.NormalizeTimes(times)})
	}

	return entries, nil
}

type UpdateRequest struct {
	Date  string   `json:"date"  validate:"required,calendardate"`
	Times []string `json:"times" validate:"required"`
}

func (r *UpdateRequest) Entry() model.Entry {
	return model.Entry{Date: strings.TrimSpace(r.Date), Times: calendar.NormalizeTimes(r.Times)}
}

type DeleteRequest struct {
	Date string `json:"date" validate:"required,calendardate"`
}

type EntryResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

func (e *EntryResponse) FromModel(entry model.Entry) {
	e.Date = entry.Date
	e.Times = entry.Times

	if e.Times == nil {
		e.Times = []string{}
	}
}

// EntriesFromModel keeps the date order of entries.
func EntriesFromModel(entries []model.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		res[i].FromModel(entry)
	}

	return res
}

type SetResponse struct {
	Message      string          `json:"message"`
	Availability []EntryResponse `json:"availability"`
}

type UpdateResponse struct {
	Message string        `json:"message"`
	Updated EntryResponse `json:"updated"`
}

type DeleteResponse struct {
	Message               string          `json:"message"`
	RemainingAvailability []EntryResponse `json:"remainingAvailability"`
}

type MineResponse struct {
	Availability []EntryResponse `json:"availability"`
}

type SlotAdmin struct {
	AdminID   string `json:"adminId"`
	AdminName string `json:"adminName"`
}

// Aggregate is date -> time label -> admins offering it.
type Aggregate map[string]map[string][]SlotAdmin

func AggregateFromSlots(slots []model.Slot) Aggregate {
	res := Aggregate{}

	for _, slot := range slots {
		byTime, ok := res[slot.Date]
		if !ok {
			byTime = map[string][]SlotAdmin{}
			res[slot.Date] = byTime
		}

		byTime[slot.TimeLabel] = append(byTime[slot.TimeLabel], SlotAdmin{
			AdminID:   slot.AdminID,
			AdminName: slot.AdminName(),
		})
	}

	return res
}

type GetAllResponse struct {
	Availability Aggregate `json:"availability"`
}

type AdminIDResponse struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
}
