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

type BuildingService struct {
	buildings repositories.BuildingRepository
	units     repositories.UnitRepository
}

func NewBuildingService(
	buildings repositories.BuildingRepository,
	units repositories.UnitRepository,
) *BuildingService {
	return &BuildingService{buildings: buildings, units: units}
}

func (s *BuildingService) Create(ctx context.Context, tenantID uuid.UUID, req dtos.CreateBuildingRequest) (*models.Building, error) {
	b := &models.Building{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		Address:  req.Address,
	}
	if err := s.buildings.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.buildings.GetByID(ctx, tenantID, b.ID)
}

func (s *BuildingService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Building, error) {
	b, err := s.buildings.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Building not found")
	}
	return b, nil
}

func (s *BuildingService) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID) ([]*models.Building, *utils.PageMeta, error) {
	rows, err := s.buildings.List(ctx, tenantID, after, constants.DefaultPageSize+1)
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

func (s *BuildingService) Update(ctx context.Context, tenantID, id uuid.UUID, req dtos.UpdateBuildingRequest) (*models.Building, error) {
	b, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name == nil && req.Address == nil {
		return b, nil
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Address != nil {
		b.Address = req.Address
	}
	if err := s.buildings.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.buildings.GetByID(ctx, tenantID, id)
}

// Delete removes an empty building. A building that still has units is a
// conflict; units must be moved or removed first.
func (s *BuildingService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.Get(ctx, tenantID, id); err != nil {
		return err
	}
	n, err := s.units.CountByBuildingID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.NewAppError(http.StatusConflict, utils.ErrCodeConflict,
			"Building still has units and cannot be deleted")
	}
	return s.buildings.Delete(ctx, tenantID, id)
}
