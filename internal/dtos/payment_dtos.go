package dtos

import "github.com/veranda-pm/billing-service/internal/models"

type RecordPaymentRequest struct {
	// Amount is in minor currency units.
	Amount int64   `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=cash bank_transfer check direct_debit portal credit_card"`
	PaidAt Date    `json:"paid_at"`
	Notes  *string `json:"notes" validate:"omitempty,max=500"`
}

type UpdatePaymentRequest struct {
	Amount *int64  `json:"amount" validate:"omitempty,gt=0"`
	Method *string `json:"method" validate:"omitempty,oneof=cash bank_transfer check direct_debit portal credit_card"`
	PaidAt *Date   `json:"paid_at"`
	Notes  *string `json:"notes" validate:"omitempty,max=500"`
}

// PaymentWithChargeResponse returns the written payment together with
// the charge as it stands after the write, so the dashboard can update
// the row without a refetch.
type PaymentWithChargeResponse struct {
	Payment *models.Payment `json:"payment"`
	Charge  *models.Charge  `json:"charge"`
}
