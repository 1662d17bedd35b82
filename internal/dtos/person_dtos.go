package dtos

import "github.com/google/uuid"

type CreatePersonRequest struct {
	FullName   string     `json:"full_name" validate:"required,max=200"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Phone      *string    `json:"phone" validate:"omitempty,max=30"`
	AuthUserID *uuid.UUID `json:"auth_user_id"`
}

type UpdatePersonRequest struct {
	FullName   *string    `json:"full_name" validate:"omitempty,max=200"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Phone      *string    `json:"phone" validate:"omitempty,max=30"`
	AuthUserID *uuid.UUID `json:"auth_user_id"`
}
