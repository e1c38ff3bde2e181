package model

import (
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/calendar"
	"slices"
	"strings"
	"time"
)

const (
	DateTableName  = "availability_dates"
	DateEntityName = "availability_date"
	TimeTableName  = "availability_times"
	TimeEntityName = "availability_time"
	SlotEntityName = "availability_slot"

	FieldAdminID   = "admin_id"
	FieldDate      = "date"
	FieldTimeLabel = "time_label"
)

// Date is a declared availability day of one admin. It may have no open times.
type Date struct {
	AdminID   string    `db:"admin_id"`
	Date      string    `db:"date"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

// Time is one open, unclaimed time label on an admin's day.
type Time struct {
	AdminID   string    `db:"admin_id"`
	Date      string    `db:"date"`
	TimeLabel string    `db:"time_label"`
	CreatedAt time.Time `db:"created_at"`
}

// Slot is an open time joined with the owning admin's profile.
type Slot struct {
	AdminID        string `db:"admin_id"`
	Date           string `db:"date"`
	TimeLabel      string `db:"time_label"`
	AdminFirstName string `db:"admin_first_name" table:"users" column:"first_name"`
	AdminLastName  string `db:"admin_last_name"  table:"users" column:"last_name"`
}

func (Slot) GetJoinQuery() string {
	return "JOIN " + userModel.TableName + " ON " + userModel.TableName + "." + userModel.FieldID + " = " + TimeTableName + "." + FieldAdminID
}

func (s Slot) AdminName() string {
	return userModel.User{FirstName: s.AdminFirstName, LastName: s.AdminLastName}.FullName()
}

// Entry is the canonical view of one availability day: date plus ordered open times.
type Entry struct {
	Date  string
	Times []string
}

// Assemble groups stored dates and times into entries ordered by date, with
// times in chronological order. Dates without open times yield empty entries.
func Assemble(dates []Date, times []Time) []Entry {
	byDate := make(map[string][]string, len(dates))

	for _, t := range times {
		byDate[t.Date] = append(byDate[t.Date], t.TimeLabel)
	}

	entries := make([]Entry, 0, len(dates))

	for _, d := range dates {
		labels := byDate[d.Date]
		if labels == nil {
			labels = []string{}
		}

		calendar.SortTimes(labels)

		entries = append(entries, Entry{Date: d.Date, Times: labels})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Date, b.Date)
	})

	return entries
}

// Find returns the entry for date.
func Find(entries []Entry, date string) (Entry, bool) {
	for _, entry := range entries {
		if entry.Date == date {
			return entry, true
		}
	}

	return Entry{}, false
}
