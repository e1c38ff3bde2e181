package model

import (
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldAdminID   = "admin_id"
	FieldDate      = "date"
	FieldTimeLabel = "time_label"
	FieldPaymentID = "payment_id"
	FieldCreatedAt = "created_at"
)

// Booking binds one customer to one admin's (date, time label) slot.
type Booking struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	AdminID        string         `db:"admin_id"`
	Date           string         `db:"date"`
	TimeLabel      string         `db:"time_label"`
	ServiceAddress string         `db:"service_address"`
	City           string         `db:"city"`
	State          string         `db:"state"`
	ZipCode        string         `db:"zip_code"`
	AddOns         pq.StringArray `db:"add_ons"`
	PaymentID      *string        `db:"payment_id"`
	AmountPaid     float64        `db:"amount_paid"`
	model.Metadata
}

func (b Booking) HasPayment() bool {
	return b.PaymentID != nil && *b.PaymentID != ""
}

// Detail is a booking joined with its owner's contact details.
type Detail struct {
	Booking
	OwnerFirstName string `db:"owner_first_name" table:"users" column:"first_name"`
	OwnerLastName  string `db:"owner_last_name"  table:"users" column:"last_name"`
	OwnerEmail     string `db:"owner_email"      table:"users" column:"email"`
}

func (Detail) GetJoinQuery() string {
	return "JOIN " + userModel.TableName + " ON " + userModel.TableName + "." + userModel.FieldID + " = " + TableName + "." + FieldUserID
}
