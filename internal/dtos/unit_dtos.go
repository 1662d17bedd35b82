package dtos

type CreateUnitRequest struct {
	UnitNumber string `json:"unit_number" validate:"required,max=50"`
	Floor      int    `json:"floor" validate:"gte=-10,lte=200"`
}

type UpdateUnitRequest struct {
	UnitNumber *string `json:"unit_number" validate:"omitempty,max=50"`
	Floor      *int    `json:"floor" validate:"omitempty,gte=-10,lte=200"`
}
