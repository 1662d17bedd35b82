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

type UnitService struct {
	units     repositories.UnitRepository
	buildings repositories.BuildingRepository
}

func NewUnitService(
	units repositories.UnitRepository,
	buildings repositories.BuildingRepository,
) *UnitService {
	return &UnitService{units: units, buildings: buildings}
}

func (s *UnitService) Create(ctx context.Context, tenantID, buildingID uuid.UUID, req dtos.CreateUnitRequest) (*models.Unit, error) {
	b, err := s.buildings.GetByID(ctx, tenantID, buildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Building not found")
	}

	u := &models.Unit{
		ID:         uuid.New(),
		TenantID:   tenantID,
		BuildingID: buildingID,
		UnitNumber: req.UnitNumber,
		Floor:      req.Floor,
	}
	if err := s.units.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.units.GetByID(ctx, tenantID, u.ID)
}

func (s *UnitService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Unit, error) {
	u, err := s.units.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found")
	}
	return u, nil
}

func (s *UnitService) ListByBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) ([]*models.Unit, error) {
	b, err := s.buildings.GetByID(ctx, tenantID, buildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Building not found")
	}
	return s.units.ListByBuildingID(ctx, tenantID, buildingID)
}

func (s *UnitService) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID) ([]*models.Unit, *utils.PageMeta, error) {
	rows, err := s.units.List(ctx, tenantID, after, constants.DefaultPageSize+1)
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

func (s *UnitService) Update(ctx context.Context, tenantID, id uuid.UUID, req dtos.UpdateUnitRequest) (*models.Unit, error) {
	u, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.UnitNumber == nil && req.Floor == nil {
		return u, nil
	}
	if req.UnitNumber != nil {
		u.UnitNumber = *req.UnitNumber
	}
	if req.Floor != nil {
		u.Floor = *req.Floor
	}
	if err := s.units.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.units.GetByID(ctx, tenantID, id)
}
