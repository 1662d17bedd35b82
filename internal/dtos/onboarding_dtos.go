package dtos

import "github.com/google/uuid"

// OnboardBuildingRequest seeds a building with units, people, roles and
// payment configs in one call. Everything is written in a single
// transaction; any failure rolls the whole request back.
type OnboardBuildingRequest struct {
	Units []OnboardUnit `json:"units" validate:"required,min=1,dive"`
}

type OnboardUnit struct {
	UnitNumber    string                `json:"unit_number" validate:"required,max=50"`
	Floor         int                   `json:"floor" validate:"gte=-10,lte=200"`
	Roles         []OnboardRole         `json:"roles" validate:"omitempty,dive"`
	PaymentConfig *OnboardPaymentConfig `json:"payment_config" validate:"omitempty"`
}

// OnboardRole assigns either an existing person (person_id) or a person
// created inline (person) to the unit. Exactly one of the two must be
// set.
type OnboardRole struct {
	PersonID      *uuid.UUID           `json:"person_id"`
	Person        *CreatePersonRequest `json:"person" validate:"omitempty"`
	RoleType      string               `json:"role_type" validate:"required,oneof=owner tenant guarantor"`
	EffectiveFrom Date                 `json:"effective_from"`
	IsFeePayer    bool                 `json:"is_fee_payer"`
}

type OnboardPaymentConfig struct {
	MonthlyAmount int64 `json:"monthly_amount" validate:"required,gt=0"`
	EffectiveFrom Date  `json:"effective_from"`
}

type OnboardBuildingResponse struct {
	BuildingID     uuid.UUID `json:"building_id"`
	UnitsCreated   int       `json:"units_created"`
	PeopleCreated  int       `json:"people_created"`
	RolesCreated   int       `json:"roles_created"`
	ConfigsCreated int       `json:"configs_created"`
}
