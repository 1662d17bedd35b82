package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/constants"
	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type PaymentConfigService struct {
	configs repositories.PaymentConfigRepository
	units   repositories.UnitRepository
	people  repositories.PersonRepository
	clock   utils.Clock
}

func NewPaymentConfigService(
	configs repositories.PaymentConfigRepository,
	units repositories.UnitRepository,
	people repositories.PersonRepository,
	clock utils.Clock,
) *PaymentConfigService {
	return &PaymentConfigService{configs: configs, units: units, people: people, clock: clock}
}

// GetActive returns the unit's active config, or nil when the unit has
// none. nil is not an error; the dashboard renders it as "not configured".
func (s *PaymentConfigService) GetActive(ctx context.Context, tenantID, unitID uuid.UUID) (*models.UnitPaymentConfig, error) {
	if err := s.requireUnit(ctx, tenantID, unitID); err != nil {
		return nil, err
	}
	return s.configs.GetActiveByUnitID(ctx, tenantID, unitID)
}

func (s *PaymentConfigService) History(ctx context.Context, tenantID, unitID uuid.UUID) ([]*models.UnitPaymentConfig, error) {
	if err := s.requireUnit(ctx, tenantID, unitID); err != nil {
		return nil, err
	}
	return s.configs.ListByUnitID(ctx, tenantID, unitID)
}

// Set replaces the unit's active config: the incumbent is closed at
// effective_from - 1 day and the new row inserted, in one transaction.
// actorAuthID resolves to created_by best-effort; attribution never
// fails the write.
func (s *PaymentConfigService) Set(
	ctx context.Context,
	tenantID, unitID uuid.UUID,
	actorAuthID *uuid.UUID,
	req dtos.SetPaymentConfigRequest,
) (*models.UnitPaymentConfig, error) {
	if err := s.requireUnit(ctx, tenantID, unitID); err != nil {
		return nil, err
	}

	if req.MonthlyAmount <= 0 || req.MonthlyAmount > constants.MonthlyAmountCeiling {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			fmt.Sprintf("monthly_amount must be between 1 and %d", constants.MonthlyAmountCeiling))
	}
	if req.EffectiveFrom.IsZero() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation, "effective_from is required")
	}
	from := utils.DateOnly(req.EffectiveFrom.Time)
	earliest := utils.DateOnly(s.clock.Now()).AddDate(-constants.ConfigBackdateYears, 0, 0)
	if from.Before(earliest) {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			fmt.Sprintf("effective_from must not be more than %d year(s) in the past", constants.ConfigBackdateYears))
	}

	cfg := &models.UnitPaymentConfig{
		ID:            uuid.New(),
		TenantID:      tenantID,
		UnitID:        unitID,
		MonthlyAmount: req.MonthlyAmount,
		EffectiveFrom: from,
		CreatedBy:     s.resolveActor(ctx, tenantID, actorAuthID),
	}
	if err := s.configs.SetActive(ctx, cfg); err != nil {
		return nil, err
	}
	return s.configs.GetActiveByUnitID(ctx, tenantID, unitID)
}

func (s *PaymentConfigService) requireUnit(ctx context.Context, tenantID, unitID uuid.UUID) error {
	u, err := s.units.GetByID(ctx, tenantID, unitID)
	if err != nil {
		return err
	}
	if u == nil {
		return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found")
	}
	return nil
}

func (s *PaymentConfigService) resolveActor(ctx context.Context, tenantID uuid.UUID, actorAuthID *uuid.UUID) *uuid.UUID {
	if actorAuthID == nil {
		return nil
	}
	p, err := s.people.GetByAuthUserID(ctx, tenantID, *actorAuthID)
	if err != nil || p == nil {
		if err != nil {
			utils.Logger.WithError(err).Warn("could not resolve acting person, leaving created_by empty")
		}
		return nil
	}
	return &p.ID
}
