package services

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/utils"
)

// SnapshotService composes the per-period dashboard: every unit of the
// tenant (optionally one building) with its charge and active fee payer,
// plus portfolio KPIs over the returned set.
type SnapshotService struct {
	buildings repositories.BuildingRepository
	units     repositories.UnitRepository
	charges   repositories.ChargeRepository
	roles     repositories.UnitRoleRepository
	configs   repositories.PaymentConfigRepository
	clock     utils.Clock
}

func NewSnapshotService(
	buildings repositories.BuildingRepository,
	units repositories.UnitRepository,
	charges repositories.ChargeRepository,
	roles repositories.UnitRoleRepository,
	configs repositories.PaymentConfigRepository,
	clock utils.Clock,
) *SnapshotService {
	return &SnapshotService{
		buildings: buildings,
		units:     units,
		charges:   charges,
		roles:     roles,
		configs:   configs,
		clock:     clock,
	}
}

func (s *SnapshotService) Snapshot(ctx context.Context, tenantID uuid.UUID, q dtos.SnapshotQuery) (*dtos.SnapshotResponse, error) {
	if q.PeriodMonth.IsZero() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation, "period_month is required")
	}
	period := utils.PeriodMonth(q.PeriodMonth)
	today := utils.DateOnly(s.clock.Now())

	buildings, err := s.loadBuildings(ctx, tenantID, q.BuildingID)
	if err != nil {
		return nil, err
	}

	charges, err := s.charges.ListByPeriod(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}
	chargeByUnit := make(map[uuid.UUID]*models.Charge, len(charges))
	for _, c := range charges {
		chargeByUnit[c.UnitID] = c
	}

	feePayers, err := s.roles.ListActiveFeePayersWithPerson(ctx, tenantID, today)
	if err != nil {
		return nil, err
	}
	feePayerByUnit := make(map[uuid.UUID]*repositories.FeePayerRow, len(feePayers))
	for _, fp := range feePayers {
		feePayerByUnit[fp.Role.UnitID] = fp
	}

	configuredUnits, err := s.configs.UnitIDsWithConfig(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := &dtos.SnapshotResponse{
		PeriodMonth: dtos.NewDate(period),
		Buildings:   make([]dtos.BuildingSnapshot, 0, len(buildings)),
	}
	var agg kpiAccumulator

	for _, b := range buildings {
		units, err := s.units.ListByBuildingID(ctx, tenantID, b.ID)
		if err != nil {
			return nil, err
		}

		bs := dtos.BuildingSnapshot{
			BuildingID: b.ID,
			Name:       b.Name,
			Address:    b.Address,
			Units:      make([]dtos.UnitSnapshot, 0, len(units)),
		}
		for _, u := range units {
			us := buildUnitSnapshot(u, chargeByUnit[u.ID], feePayerByUnit[u.ID], configuredUnits[u.ID], today)
			agg.add(us)
			bs.Units = append(bs.Units, us)
		}
		resp.Buildings = append(resp.Buildings, bs)
	}

	resp.KPIs = agg.finish()
	return resp, nil
}

func (s *SnapshotService) loadBuildings(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID) ([]*models.Building, error) {
	if buildingID == nil {
		return s.buildings.ListAll(ctx, tenantID)
	}
	b, err := s.buildings.GetByID(ctx, tenantID, *buildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Building not found")
	}
	return []*models.Building{b}, nil
}

// buildUnitSnapshot merges one unit with its charge and fee payer. Units
// with no charge for the period, or no payment config row at all, report
// the synthetic no_config status with zeroed amounts and no due date.
func buildUnitSnapshot(
	u *models.Unit,
	charge *models.Charge,
	feePayer *repositories.FeePayerRow,
	hasConfig bool,
	today time.Time,
) dtos.UnitSnapshot {
	us := dtos.UnitSnapshot{
		UnitID:     u.ID,
		UnitNumber: u.UnitNumber,
		Floor:      u.Floor,
		Status:     models.ChargeStatusNoConfig,
	}

	if charge != nil && hasConfig {
		us.Status = charge.Status
		us.AmountDue = charge.AmountDue
		us.AmountPaid = charge.AmountPaid
		us.DueDate = utils.Ptr(dtos.NewDate(charge.DueDate))
		us.Overdue = charge.IsOverdue(today)
		us.ChargeID = &charge.ID
	}

	if feePayer != nil {
		us.FeePayer = &dtos.FeePayerInfo{
			PersonID:      feePayer.Person.ID,
			FullName:      feePayer.Person.FullName,
			Email:         feePayer.Person.Email,
			Phone:         feePayer.Person.Phone,
			RoleType:      feePayer.Role.RoleType,
			RoleTypeLabel: models.RoleTypeLabel(feePayer.Role.RoleType),
		}
	}
	return us
}

// kpiAccumulator aggregates KPI inputs over the returned unit set.
// Units with status no_config or waived stay out of the collection rate.
type kpiAccumulator struct {
	collected   int64
	outstanding int64
	due         int64
	overdue     int
}

func (a *kpiAccumulator) add(us dtos.UnitSnapshot) {
	if us.Status == models.ChargeStatusNoConfig || us.Status == models.ChargeStatusWaived {
		return
	}
	a.collected += us.AmountPaid
	a.outstanding += us.AmountDue - us.AmountPaid
	a.due += us.AmountDue
	if us.Overdue {
		a.overdue++
	}
}

func (a *kpiAccumulator) finish() dtos.SnapshotKPIs {
	kpis := dtos.SnapshotKPIs{
		TotalCollected:   a.collected,
		TotalOutstanding: a.outstanding,
		OverdueUnitCount: a.overdue,
	}
	// Rounded to one decimal; an empty denominator reports 0, not NaN.
	if a.due > 0 {
		kpis.CollectionRate = math.Round(float64(a.collected)/float64(a.due)*1000) / 10
	}
	return kpis
}
