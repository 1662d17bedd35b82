package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/models"
)

// SnapshotQuery is the parsed query string of the billing snapshot.
type SnapshotQuery struct {
	PeriodMonth time.Time
	BuildingID  *uuid.UUID
}

// SnapshotResponse is the per-building, per-unit occupancy and billing
// picture for one period, with portfolio KPIs over the returned units.
type SnapshotResponse struct {
	PeriodMonth Date               `json:"period_month"`
	Buildings   []BuildingSnapshot `json:"buildings"`
	KPIs        SnapshotKPIs       `json:"kpis"`
}

type BuildingSnapshot struct {
	BuildingID uuid.UUID      `json:"building_id"`
	Name       string         `json:"name"`
	Address    *string        `json:"address,omitempty"`
	Units      []UnitSnapshot `json:"units"`
}

// UnitSnapshot merges a unit with its period charge and active fee
// payer. Status is no_config when the unit has no charge for the period
// or no payment config at all; amounts are forced to zero then.
type UnitSnapshot struct {
	UnitID     uuid.UUID           `json:"unit_id"`
	UnitNumber string              `json:"unit_number"`
	Floor      int                 `json:"floor"`
	Status     models.ChargeStatus `json:"status"`
	AmountDue  int64               `json:"amount_due"`
	AmountPaid int64               `json:"amount_paid"`
	DueDate    *Date               `json:"due_date"`
	Overdue    bool                `json:"overdue"`
	ChargeID   *uuid.UUID          `json:"charge_id,omitempty"`
	FeePayer   *FeePayerInfo       `json:"fee_payer"`
}

type FeePayerInfo struct {
	PersonID      uuid.UUID       `json:"person_id"`
	FullName      string          `json:"full_name"`
	Email         *string         `json:"email,omitempty"`
	Phone         *string         `json:"phone,omitempty"`
	RoleType      models.RoleType `json:"role_type"`
	RoleTypeLabel string          `json:"role_type_label"`
}

// SnapshotKPIs aggregates over the returned unit set. Units with status
// no_config or waived are excluded from the collection rate.
type SnapshotKPIs struct {
	TotalCollected   int64   `json:"total_collected"`
	TotalOutstanding int64   `json:"total_outstanding"`
	CollectionRate   float64 `json:"collection_rate"`
	OverdueUnitCount int     `json:"overdue_unit_count"`
}
