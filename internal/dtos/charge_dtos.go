package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/models"
)

type GenerateChargesRequest struct {
	// PeriodMonth accepts any date within the month; it is normalized to
	// the first day.
	PeriodMonth Date `json:"period_month"`
}

// ListChargesQuery is the parsed query string of the charge listing.
type ListChargesQuery struct {
	PeriodMonth time.Time
	BuildingID  *uuid.UUID
	Statuses    []models.ChargeStatus
	Overdue     bool
	After       *uuid.UUID
}

// ChargeListItemResponse is one row of the charge listing, the charge
// flattened with its unit/building identity and a derived overdue flag.
type ChargeListItemResponse struct {
	ID           uuid.UUID           `json:"id"`
	UnitID       uuid.UUID           `json:"unit_id"`
	UnitNumber   string              `json:"unit_number"`
	BuildingID   uuid.UUID           `json:"building_id"`
	BuildingName string              `json:"building_name"`
	PeriodMonth  Date                `json:"period_month"`
	AmountDue    int64               `json:"amount_due"`
	AmountPaid   int64               `json:"amount_paid"`
	Status       models.ChargeStatus `json:"status"`
	DueDate      Date                `json:"due_date"`
	Overdue      bool                `json:"overdue"`
	CreatedAt    time.Time           `json:"created_at"`
}
