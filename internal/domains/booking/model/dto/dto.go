package dto

import (
	"cleanbook/infras/stripe"
	"cleanbook/internal/domains/booking/model"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/pricing"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookRequest struct {
	SelectedDate string          `json:"selectedDate" validate:"required,calendardate"`
	SelectedTime string          `json:"selectedTime" validate:"required,notblank,max=50"`
	AddOns       json.RawMessage `json:"addOns"       swaggertype:"array,string"`
	PaymentID    string          `json:"paymentId"    validate:"omitempty,max=255"`
}

func (r *BookRequest) Date() string {
	return strings.TrimSpace(r.SelectedDate)
}

func (r *BookRequest) Time() string {
	return strings.TrimSpace(r.SelectedTime)
}

// AddOnList reads addOns permissively: anything other than an array of
// strings is treated as no add-ons. Blank and repeated entries are dropped.
func (r *BookRequest) AddOnList() []string {
	var raw []string
	if len(r.AddOns) == 0 || json.Unmarshal(r.AddOns, &raw) != nil {
		return []string{}
	}

	seen := make(map[string]struct{}, len(raw))
	res := make([]string, 0, len(raw))

	for _, addOn := range raw {
		addOn = strings.TrimSpace(addOn)
		if addOn == "" {
			continue
		}

		if _, ok := seen[addOn]; ok {
			continue
		}

		seen[addOn] = struct{}{}
		res = append(res, addOn)
	}

	return res
}

// ToModel snapshots the owner's address onto a new booking for adminID.
func (r *BookRequest) ToModel(user userModel.User, adminID string, receipt *stripe.Receipt, now time.Time) model.Booking {
	booking := model.Booking{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		AdminID:        adminID,
		Date:           r.Date(),
		TimeLabel:      r.Time(),
		ServiceAddress: user.ServiceAddress,
		City:           user.City,
		State:          user.State,
		ZipCode:        user.ZipCode,
		AddOns:         r.AddOnList(),
		Metadata:       gModel.NewMetadata(user.ID, now),
	}

	if receipt != nil {
		paymentID := receipt.ID
		booking.PaymentID = &paymentID
		booking.AmountPaid = pricing.FromMinorUnits(receipt.AmountReceived)
	}

	return booking
}

type BookingResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"userId"`
	AdminID        string   `json:"adminId"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	ServiceAddress string   `json:"serviceAddress"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zipCode"`
	AddOns         []string `json:"addOns"`
	PaymentID      *string  `json:"paymentId"`
	AmountPaid     float64  `json:"amountPaid"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.UserID = booking.UserID
	r.AdminID = booking.AdminID
	r.Date = booking.Date
	r.Time = booking.TimeLabel
	r.ServiceAddress = booking.ServiceAddress
	r.City = booking.City
	r.State = booking.State
	r.ZipCode = booking.ZipCode
	r.AddOns = booking.AddOns
	r.PaymentID = booking.PaymentID
	r.AmountPaid = booking.AmountPaid
	r.Metadata.FromModel(booking.Metadata)

	if r.AddOns == nil {
		r.AddOns = []string{}
	}
}

func FromModels(bookings []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res
}

type BookResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type BookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type Owner struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type DetailResponse struct {
	BookingResponse
	Owner Owner `json:"user"`
}

func (r *DetailResponse) FromModel(detail model.Detail) {
	r.BookingResponse.FromModel(detail.Booking)
	r.Owner = Owner{
		ID:        detail.UserID,
		FirstName: detail.OwnerFirstName,
		LastName:  detail.OwnerLastName,
		Email:     detail.OwnerEmail,
	}
}

type AllBookingsResponse struct {
	Bookings  []DetailResponse `json:"bookings"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *AllBookingsResponse) FromModels(details []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]DetailResponse, len(details))
	for i, detail := range details {
		r.Bookings[i].FromModel(detail)
	}
}

// ListFilter narrows the admin booking list. Empty fields do not filter.
type ListFilter struct {
	From    string `json:"from"    validate:"omitempty,calendardate"`
	To      string `json:"to"      validate:"omitempty,calendardate"`
	AdminID string `json:"adminId" validate:"omitempty,uuid"`
	Paid    *bool  `json:"paid"`
	Search  string `json:"search"  validate:"omitempty,max=100"`
}

// FromRequest reads the filter from the query string. An unreadable paid flag is ignored.
func (f *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.From = strings.TrimSpace(query.Get(constant.RequestParamFrom))
	f.To = strings.TrimSpace(query.Get(constant.RequestParamTo))
	f.AdminID = strings.TrimSpace(query.Get(constant.RequestParamAdminID))
	f.Search = strings.TrimSpace(query.Get(constant.RequestParamSearch))

	if paid, err := strconv.ParseBool(query.Get(constant.RequestParamPaid)); err == nil {
		f.Paid = &paid
	}
}

func (f *ListFilter) FilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.From != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: "date_from", Field: model.FieldDate, Operator: gDto.FilterOperatorGreaterEq, Value: f.From, Table: model.TableName,
		})
	}

	if f.To != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: "date_to", Field: model.FieldDate, Operator: gDto.FilterOperatorLessEq, Value: f.To, Table: model.TableName,
		})
	}

	if f.AdminID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldAdminID, Operator: gDto.FilterOperatorEq, Value: f.AdminID, Table: model.TableName,
		})
	}

	if f.Paid != nil {
		operator := gDto.FilterIsNull
		if *f.Paid {
			operator = gDto.FilterIsNotNull
		}

		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldPaymentID, Operator: operator, Table: model.TableName})
	}

	if f.Search != "" {
		search := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}

		for _, field := range []string{userModel.FieldEmail, userModel.FieldFirstName, userModel.FieldLastName} {
			search.Filters = append(search.Filters, gDto.Filter{
				ArgName: "search_" + field, Field: field, Operator: gDto.FilterOperatorLike, Value: f.Search, Table: userModel.TableName,
			})
		}

		group.Filters = append(group.Filters, search)
	}

	return group
}

// RefundResponse reports what happened to the refund leg of a cancellation.
type RefundResponse struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Amount  int64  `json:"amount,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r *RefundResponse) FromOutcome(outcome stripe.RefundOutcome) {
	r.ID = outcome.ID
	r.Status = outcome.Status
	r.Amount = outcome.Amount
}

type CancelResponse struct {
	Message        string          `json:"message"`
	Refund         string          `json:"refund"`
	RefundResponse *RefundResponse `json:"refundResponse"`
}

type DeleteRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
