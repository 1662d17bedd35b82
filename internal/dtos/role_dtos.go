package dtos

import (
	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/models"
)

type CreateRoleRequest struct {
	PersonID      uuid.UUID `json:"person_id" validate:"required"`
	RoleType      string    `json:"role_type" validate:"required,oneof=owner tenant guarantor"`
	EffectiveFrom Date      `json:"effective_from"`
	EffectiveTo   *Date     `json:"effective_to"`
	IsFeePayer    bool      `json:"is_fee_payer"`

	// ReplaceFeePayer resolves a fee-payer conflict by demoting the
	// current active fee payer instead of rejecting with 409.
	ReplaceFeePayer bool `json:"replace_fee_payer"`
}

type UpdateRoleRequest struct {
	RoleType      *string `json:"role_type" validate:"omitempty,oneof=owner tenant guarantor"`
	EffectiveFrom *Date   `json:"effective_from"`
	EffectiveTo   *Date   `json:"effective_to"`
	IsFeePayer    *bool   `json:"is_fee_payer"`

	ReplaceFeePayer bool `json:"replace_fee_payer"`
}

// IsEmpty reports a patch with no recognized field. The endpoint treats
// it as a no-op and returns the unchanged role.
func (r UpdateRoleRequest) IsEmpty() bool {
	return r.RoleType == nil && r.EffectiveFrom == nil && r.EffectiveTo == nil && r.IsFeePayer == nil
}

// RoleWithPerson is a unit's role joined with the person holding it.
type RoleWithPerson struct {
	models.UnitRole
	Person *models.Person `json:"person,omitempty"`
}

// FeePayerConflict is the details payload of a DUPLICATE_FEE_PAYER
// rejection: the record the caller would have to replace.
type FeePayerConflict struct {
	RoleID        uuid.UUID       `json:"role_id"`
	PersonID      uuid.UUID       `json:"person_id"`
	RoleType      models.RoleType `json:"role_type"`
	EffectiveFrom Date            `json:"effective_from"`
	EffectiveTo   *Date           `json:"effective_to"`
}

func NewFeePayerConflict(role *models.UnitRole) *FeePayerConflict {
	return &FeePayerConflict{
		RoleID:        role.ID,
		PersonID:      role.PersonID,
		RoleType:      role.RoleType,
		EffectiveFrom: NewDate(role.EffectiveFrom),
		EffectiveTo:   NewDatePtr(role.EffectiveTo),
	}
}
