package models

import (
	"time"

	"github.com/google/uuid"
)

type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "pending"
	ChargeStatusPartial ChargeStatus = "partial"
	ChargeStatusPaid    ChargeStatus = "paid"
	ChargeStatusWaived  ChargeStatus = "waived"

	// ChargeStatusNoConfig is synthetic: reported for units that have no
	// payment config row at all. Never persisted.
	ChargeStatusNoConfig ChargeStatus = "no_config"
)

// Charge is one billing-period obligation for one unit. Exactly one row
// exists per (tenant, unit, period_month); period_month is the first day
// of the calendar month.
type Charge struct {
	ID          uuid.UUID    `json:"id"`
	TenantID    uuid.UUID    `json:"tenant_id"`
	UnitID      uuid.UUID    `json:"unit_id"`
	PeriodMonth time.Time    `json:"period_month"`
	AmountDue   int64        `json:"amount_due"`
	AmountPaid  int64        `json:"amount_paid"`
	Status      ChargeStatus `json:"status"`
	DueDate     time.Time    `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSettled reports whether the charge accepts further payments.
func (c *Charge) IsSettled() bool {
	return c.Status == ChargeStatusPaid || c.Status == ChargeStatusWaived
}

// IsOverdue reports whether the charge is unpaid past its due date.
// The comparison is date-only; today must already be truncated.
func (c *Charge) IsOverdue(today time.Time) bool {
	if c.Status != ChargeStatusPending && c.Status != ChargeStatusPartial {
		return false
	}
	return c.DueDate.Before(today)
}
