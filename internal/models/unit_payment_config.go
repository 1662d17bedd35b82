package models

import (
	"time"

	"github.com/google/uuid"
)

// UnitPaymentConfig is one row of the per-unit monthly amount history.
// MonthlyAmount is in minor currency units. EffectiveUntil nil marks the
// active row; setting a new config closes the prior one at
// effective_from - 1 day. History is append-only.
type UnitPaymentConfig struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	UnitID         uuid.UUID  `json:"unit_id"`
	MonthlyAmount  int64      `json:"monthly_amount"`
	EffectiveFrom  time.Time  `json:"effective_from"`
	EffectiveUntil *time.Time `json:"effective_until,omitempty"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
