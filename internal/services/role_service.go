package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/utils"
)

// RoleService owns unit-role assignment, including the single active
// fee payer rule: at most one active fee-payer role may exist per unit
// on any given day. Writes that would break the rule are rejected with
// DUPLICATE_FEE_PAYER unless the caller asks to replace the incumbent,
// in which case the demotion and the write happen in one transaction.
type RoleService struct {
	roles  repositories.UnitRoleRepository
	units  repositories.UnitRepository
	people repositories.PersonRepository
	clock  utils.Clock
}

func NewRoleService(
	roles repositories.UnitRoleRepository,
	units repositories.UnitRepository,
	people repositories.PersonRepository,
	clock utils.Clock,
) *RoleService {
	return &RoleService{roles: roles, units: units, people: people, clock: clock}
}

func (s *RoleService) Create(ctx context.Context, tenantID, unitID uuid.UUID, req dtos.CreateRoleRequest) (*models.UnitRole, error) {
	unit, err := s.units.GetByID(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found")
	}

	person, err := s.people.GetByID(ctx, tenantID, req.PersonID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Person not found")
	}

	if req.EffectiveFrom.IsZero() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation, "effective_from is required")
	}
	var to *time.Time
	if req.EffectiveTo != nil {
		t := utils.DateOnly(req.EffectiveTo.Time)
		to = &t
	}
	from := utils.DateOnly(req.EffectiveFrom.Time)
	if to != nil && to.Before(from) {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidDateRange,
			"effective_to must not precede effective_from")
	}

	role := &models.UnitRole{
		ID:            uuid.New(),
		TenantID:      tenantID,
		UnitID:        unitID,
		PersonID:      req.PersonID,
		RoleType:      models.RoleType(req.RoleType),
		EffectiveFrom: from,
		EffectiveTo:   to,
		IsFeePayer:    req.IsFeePayer,
	}

	if !role.IsFeePayer || !role.ActiveOn(s.today()) {
		if err := s.roles.Create(ctx, role); err != nil {
			return nil, err
		}
		return s.roles.GetByID(ctx, tenantID, role.ID)
	}

	conflict, err := s.roles.FindActiveFeePayer(ctx, tenantID, unitID, s.today(), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case conflict == nil:
		err = s.roles.Create(ctx, role)
	case req.ReplaceFeePayer:
		err = s.roles.CreateReplacingFeePayer(ctx, role, s.today())
	default:
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeDuplicateFeePayer,
			"Unit already has an active fee payer").
			WithDetails(dtos.NewFeePayerConflict(conflict))
	}
	if err != nil {
		return nil, err
	}
	return s.roles.GetByID(ctx, tenantID, role.ID)
}

func (s *RoleService) ListByUnit(ctx context.Context, tenantID, unitID uuid.UUID) ([]*dtos.RoleWithPerson, error) {
	unit, err := s.units.GetByID(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found")
	}

	roles, err := s.roles.ListByUnitID(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}
	out := make([]*dtos.RoleWithPerson, 0, len(roles))
	for _, role := range roles {
		person, err := s.people.GetByID(ctx, tenantID, role.PersonID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dtos.RoleWithPerson{UnitRole: *role, Person: person})
	}
	return out, nil
}

// Update patches a role. The role must belong to the addressed unit;
// a mismatch is reported as ROLE_NOT_FOUND rather than leaking the
// role's real location. An empty patch returns the role unchanged.
func (s *RoleService) Update(ctx context.Context, tenantID, unitID, roleID uuid.UUID, req dtos.UpdateRoleRequest) (*models.UnitRole, error) {
	role, err := s.roles.GetByID(ctx, tenantID, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil || role.UnitID != unitID {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeRoleNotFound, "Role not found on this unit")
	}

	if req.IsEmpty() {
		return role, nil
	}

	if req.RoleType != nil {
		role.RoleType = models.RoleType(*req.RoleType)
	}
	if req.EffectiveFrom != nil {
		role.EffectiveFrom = utils.DateOnly(req.EffectiveFrom.Time)
	}
	if req.EffectiveTo != nil {
		t := utils.DateOnly(req.EffectiveTo.Time)
		role.EffectiveTo = &t
	}
	if role.EffectiveTo != nil && role.EffectiveTo.Before(role.EffectiveFrom) {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidDateRange,
			"effective_to must not precede effective_from")
	}
	if req.IsFeePayer != nil {
		role.IsFeePayer = *req.IsFeePayer
	}

	if !role.IsFeePayer || !role.ActiveOn(s.today()) {
		if err := s.roles.Update(ctx, role); err != nil {
			return nil, err
		}
		return s.roles.GetByID(ctx, tenantID, roleID)
	}

	conflict, err := s.roles.FindActiveFeePayer(ctx, tenantID, unitID, s.today(), &roleID)
	if err != nil {
		return nil, err
	}
	switch {
	case conflict == nil:
		err = s.roles.Update(ctx, role)
	case req.ReplaceFeePayer:
		err = s.roles.UpdateReplacingFeePayer(ctx, role, s.today())
	default:
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeDuplicateFeePayer,
			"Unit already has an active fee payer").
			WithDetails(dtos.NewFeePayerConflict(conflict))
	}
	if err != nil {
		return nil, err
	}
	return s.roles.GetByID(ctx, tenantID, roleID)
}

func (s *RoleService) today() time.Time {
	return utils.DateOnly(s.clock.Now())
}
