package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a single dwelling inside a building. The unit number is a
// human-facing label ("301", "B-12"), not necessarily numeric.
type Unit struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	BuildingID uuid.UUID `json:"building_id"`
	UnitNumber string    `json:"unit_number"`
	Floor      int       `json:"floor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
