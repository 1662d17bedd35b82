package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodDirectDebit  PaymentMethod = "direct_debit"
	PaymentMethodPortal       PaymentMethod = "portal"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheck,
		PaymentMethodDirectDebit, PaymentMethodPortal, PaymentMethodCreditCard:
		return true
	}
	return false
}

// Payment applies money against exactly one charge. The ledger supports
// several payments per charge even though the operator UI pays the full
// remaining amount in one go.
type Payment struct {
	ID         uuid.UUID     `json:"id"`
	TenantID   uuid.UUID     `json:"tenant_id"`
	ChargeID   uuid.UUID     `json:"charge_id"`
	Amount     int64         `json:"amount"`
	Method     PaymentMethod `json:"method"`
	PaidAt     time.Time     `json:"paid_at"`
	Notes      *string       `json:"notes,omitempty"`
	RecordedBy *uuid.UUID    `json:"recorded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
