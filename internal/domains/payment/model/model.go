package model

import (
	"cleanbook/infras/stripe"
	"cleanbook/shared/pricing"
	"time"
)

const (
	ModeDeposit = "deposit"
	ModeFull    = "full"
)

const (
	MetadataUserID = "user_id"
	MetadataMode   = "mode"
)

// CapturedEvent is published once Stripe confirms a payment intent succeeded.
type CapturedEvent struct {
	Type       string    `json:"type"`
	PaymentID  string    `json:"paymentId"`
	UserID     string    `json:"userId,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewCapturedEvent(eventType string, receipt stripe.Receipt, at time.Time) CapturedEvent {
	return CapturedEvent{
		Type:       eventType,
		PaymentID:  receipt.ID,
		UserID:     receipt.Metadata[MetadataUserID],
		Mode:       receipt.Metadata[MetadataMode],
		Amount:     pricing.FromMinorUnits(receipt.AmountReceived),
		Currency:   receipt.Currency,
		OccurredAt: at,
	}
}
