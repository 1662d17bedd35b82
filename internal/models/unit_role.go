package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleType string

const (
	RoleTypeOwner     RoleType = "owner"
	RoleTypeTenant    RoleType = "tenant"
	RoleTypeGuarantor RoleType = "guarantor"
)

func (rt RoleType) IsValid() bool {
	switch rt {
	case RoleTypeOwner, RoleTypeTenant, RoleTypeGuarantor:
		return true
	}
	return false
}

// RoleTypeLabel maps a role type to its display label. The stored value
// is the data contract; the label is presentation only.
func RoleTypeLabel(rt RoleType) string {
	switch rt {
	case RoleTypeOwner:
		return "Owner"
	case RoleTypeTenant:
		return "Tenant"
	case RoleTypeGuarantor:
		return "Guarantor"
	}
	return string(rt)
}

// UnitRole assigns a person to a unit over a date range. EffectiveTo nil
// means the role is open-ended. Several roles may be active on one unit at
// once (owner + tenant), but at most one active role is the fee payer.
type UnitRole struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	UnitID        uuid.UUID  `json:"unit_id"`
	PersonID      uuid.UUID  `json:"person_id"`
	RoleType      RoleType   `json:"role_type"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
	IsFeePayer    bool       `json:"is_fee_payer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveOn reports whether the role is active on the given date. A role
// whose EffectiveTo equals the date still counts as active.
func (r *UnitRole) ActiveOn(date time.Time) bool {
	if r.EffectiveTo == nil {
		return true
	}
	return !r.EffectiveTo.Before(date)
}
