package dto

import (
	"cleanbook/infras/stripe"
	"cleanbook/shared/pricing"
)

type PayRequest struct {
	Mode            string   `json:"mode"            validate:"required,oneof=deposit full"`
	SelectedAddOns  []string `json:"selectedAddOns"  validate:"omitempty,dive,max=50"`
	CeilingFanCount int      `json:"ceilingFanCount" validate:"min=0,max=50"`
}

type PayResponse struct {
	ClientSecret string  `json:"clientSecret"`
	PaymentID    string  `json:"paymentId"`
	TotalAmount  float64 `json:"totalAmount"`
}

func (p *PayResponse) FromReceipt(receipt stripe.Receipt) {
	p.ClientSecret = receipt.ClientSecret
	p.PaymentID = receipt.ID
	p.TotalAmount = pricing.FromMinorUnits(receipt.Amount)
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Type     string `json:"type,omitempty"`
}
