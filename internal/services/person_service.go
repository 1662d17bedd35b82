package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/constants"
	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type PersonService struct {
	people repositories.PersonRepository
}

func NewPersonService(people repositories.PersonRepository) *PersonService {
	return &PersonService{people: people}
}

func (s *PersonService) Create(ctx context.Context, tenantID uuid.UUID, req dtos.CreatePersonRequest) (*models.Person, error) {
	p := &models.Person{
		ID:         uuid.New(),
		TenantID:   tenantID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		AuthUserID: req.AuthUserID,
	}
	if err := s.people.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.people.GetByID(ctx, tenantID, p.ID)
}

func (s *PersonService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Person, error) {
	p, err := s.people.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Person not found")
	}
	return p, nil
}

func (s *PersonService) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID) ([]*models.Person, *utils.PageMeta, error) {
	rows, err := s.people.List(ctx, tenantID, after, constants.DefaultPageSize+1)
	if err != nil {
		return nil, nil, err
	}
	hasMore := len(rows) > constants.DefaultPageSize
	if hasMore {
		rows = rows[:constants.DefaultPageSize]
	}
	var lastID *uuid.UUID
	if len(rows) > 0 {
		lastID = &rows[len(rows)-1].ID
	}
	return rows, utils.NewPageMeta(hasMore, lastID), nil
}

func (s *PersonService) Update(ctx context.Context, tenantID, id uuid.UUID, req dtos.UpdatePersonRequest) (*models.Person, error) {
	p, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.FullName == nil && req.Email == nil && req.Phone == nil && req.AuthUserID == nil {
		return p, nil
	}
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.AuthUserID != nil {
		p.AuthUserID = req.AuthUserID
	}
	if err := s.people.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.people.GetByID(ctx, tenantID, id)
}
