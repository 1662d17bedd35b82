package dtos

type CreateBuildingRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

type UpdateBuildingRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}
