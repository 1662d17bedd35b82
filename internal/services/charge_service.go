package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/veranda-pm/billing-service/internal/constants"
	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/utils"
)

// ChargeService drives monthly charge generation and the charge listing.
// Generation delegates to a database procedure that only fills gaps, so
// triggering it twice for one period never duplicates charges.
type ChargeService struct {
	charges repositories.ChargeRepository
	logs    repositories.GenerationLogRepository
	configs repositories.PaymentConfigRepository
	clock   utils.Clock
}

func NewChargeService(
	charges repositories.ChargeRepository,
	logs repositories.GenerationLogRepository,
	configs repositories.PaymentConfigRepository,
	clock utils.Clock,
) *ChargeService {
	return &ChargeService{charges: charges, logs: logs, configs: configs, clock: clock}
}

// Generate runs bulk generation for one tenant and period and writes the
// audit row. The period is normalized to the first day of its month.
func (s *ChargeService) Generate(
	ctx context.Context,
	tenantID uuid.UUID,
	period time.Time,
	trigger models.GenerationTrigger,
) (*models.ChargeGenerationLog, error) {
	if period.IsZero() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation, "period_month is required")
	}
	periodMonth := utils.PeriodMonth(period)

	created, err := s.charges.BulkGenerate(ctx, tenantID, periodMonth)
	if err != nil {
		return nil, err
	}

	log := &models.ChargeGenerationLog{
		ID:             uuid.New(),
		TenantID:       tenantID,
		PeriodMonth:    periodMonth,
		TriggeredBy:    trigger,
		ChargesCreated: created,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}

	utils.Logger.WithFields(logrus.Fields{
		"tenant_id":       tenantID,
		"period_month":    periodMonth.Format("2006-01"),
		"triggered_by":    trigger,
		"charges_created": created,
	}).Info("charge generation complete")

	return log, nil
}

// GenerateForAllTenants is the scheduled entry point: it runs generation
// for the current month for every tenant that has at least one active
// payment config. Per-tenant failures are logged and skipped so one bad
// tenant cannot starve the rest.
func (s *ChargeService) GenerateForAllTenants(ctx context.Context) {
	period := utils.PeriodMonth(s.clock.Now())

	tenantIDs, err := s.configs.TenantIDsWithActiveConfig(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("scheduled generation: could not list tenants")
		return
	}

	for _, tenantID := range tenantIDs {
		if _, err := s.Generate(ctx, tenantID, period, models.GenerationTriggerPgCron); err != nil {
			utils.Logger.WithError(err).WithField("tenant_id", tenantID).
				Error("scheduled generation failed for tenant")
		}
	}
}

// List pages the charge listing ordered by building, newest charge
// first. The overdue filter overrides any status filter.
func (s *ChargeService) List(ctx context.Context, tenantID uuid.UUID, q dtos.ListChargesQuery) ([]*dtos.ChargeListItemResponse, *utils.PageMeta, error) {
	if q.PeriodMonth.IsZero() {
		return nil, nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation, "period_month is required")
	}
	today := utils.DateOnly(s.clock.Now())

	f := repositories.ChargeListFilter{
		PeriodMonth: utils.PeriodMonth(q.PeriodMonth),
		BuildingID:  q.BuildingID,
		Statuses:    q.Statuses,
		Overdue:     q.Overdue,
		Today:       today,
	}
	rows, err := s.charges.List(ctx, tenantID, f, q.After, constants.DefaultPageSize+1)
	if err != nil {
		return nil, nil, err
	}

	hasMore := len(rows) > constants.DefaultPageSize
	if hasMore {
		rows = rows[:constants.DefaultPageSize]
	}

	items := make([]*dtos.ChargeListItemResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dtos.ChargeListItemResponse{
			ID:           row.Charge.ID,
			UnitID:       row.Charge.UnitID,
			UnitNumber:   row.UnitNumber,
			BuildingID:   row.BuildingID,
			BuildingName: row.BuildingName,
			PeriodMonth:  dtos.NewDate(row.Charge.PeriodMonth),
			AmountDue:    row.Charge.AmountDue,
			AmountPaid:   row.Charge.AmountPaid,
			Status:       row.Charge.Status,
			DueDate:      dtos.NewDate(row.Charge.DueDate),
			Overdue:      row.Charge.IsOverdue(today),
			CreatedAt:    row.Charge.CreatedAt,
		})
	}

	var lastID *uuid.UUID
	if len(rows) > 0 {
		lastID = &rows[len(rows)-1].Charge.ID
	}
	return items, utils.NewPageMeta(hasMore, lastID), nil
}

func (s *ChargeService) ListGenerationLogs(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID) ([]*models.ChargeGenerationLog, *utils.PageMeta, error) {
	rows, err := s.logs.List(ctx, tenantID, after, constants.DefaultPageSize+1)
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
