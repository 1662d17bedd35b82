package models

import (
	"time"

	"github.com/google/uuid"
)

// Building is a residential building managed for one tenant (operator
// account). It owns Units; deletion is blocked while any unit remains.
type Building struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
	Address  *string   `json:"address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
