package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is a natural person known to the tenant: an occupant, owner or
// guarantor. AuthUserID links an invited person to their login identity;
// it stays nil for people who never sign in.
type Person struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	FullName   string     `json:"full_name"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	AuthUserID *uuid.UUID `json:"auth_user_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
