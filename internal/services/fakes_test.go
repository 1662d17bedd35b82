package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
)

/* ------------------------------------------------------------------
   In-memory repository fakes. They mimic the SQL semantics the real
   repositories document, including the transactional compound writes.
------------------------------------------------------------------ */

type fakeBuildingRepo struct {
	buildings map[uuid.UUID]*models.Building
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{buildings: map[uuid.UUID]*models.Building{}}
}

func (f *fakeBuildingRepo) Create(_ context.Context, b *models.Building) error {
	cp := *b
	f.buildings[b.ID] = &cp
	return nil
}

func (f *fakeBuildingRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*models.Building, error) {
	b, ok := f.buildings[id]
	if !ok || b.TenantID != tenantID {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBuildingRepo) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.Building, error) {
	all, _ := f.ListAll(ctx, tenantID)
	var out []*models.Building
	for _, b := range all {
		if after != nil && !lessUUID(b.ID, *after) {
			continue
		}
		out = append(out, b)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeBuildingRepo) ListAll(_ context.Context, tenantID uuid.UUID) ([]*models.Building, error) {
	var out []*models.Building
	for _, b := range f.buildings {
		if b.TenantID == tenantID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessUUID(out[j].ID, out[i].ID) })
	return out, nil
}

func (f *fakeBuildingRepo) Update(_ context.Context, b *models.Building) error {
	cp := *b
	f.buildings[b.ID] = &cp
	return nil
}

func (f *fakeBuildingRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	b, ok := f.buildings[id]
	if !ok || b.TenantID != tenantID {
		return pgx.ErrNoRows
	}
	delete(f.buildings, id)
	return nil
}

func (f *fakeBuildingRepo) DistinctTenantIDs(context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

type fakeUnitRepo struct {
	units map[uuid.UUID]*models.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: map[uuid.UUID]*models.Unit{}}
}

func (f *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	cp := *u
	f.units[u.ID] = &cp
	return nil
}

func (f *fakeUnitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		if err := f.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeUnitRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*models.Unit, error) {
	u, ok := f.units[id]
	if !ok || u.TenantID != tenantID {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUnitRepo) ListByBuildingID(_ context.Context, tenantID, buildingID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range f.units {
		if u.TenantID == tenantID && u.BuildingID == buildingID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitNumber < out[j].UnitNumber })
	return out, nil
}

func (f *fakeUnitRepo) ListAll(_ context.Context, tenantID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range f.units {
		if u.TenantID == tenantID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) List(context.Context, uuid.UUID, *uuid.UUID, int) ([]*models.Unit, error) {
	return nil, nil
}

func (f *fakeUnitRepo) Update(_ context.Context, u *models.Unit) error {
	cp := *u
	f.units[u.ID] = &cp
	return nil
}

func (f *fakeUnitRepo) CountByBuildingID(_ context.Context, tenantID, buildingID uuid.UUID) (int, error) {
	n := 0
	for _, u := range f.units {
		if u.TenantID == tenantID && u.BuildingID == buildingID {
			n++
		}
	}
	return n, nil
}

type fakePersonRepo struct {
	people map[uuid.UUID]*models.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{people: map[uuid.UUID]*models.Person{}}
}

func (f *fakePersonRepo) Create(_ context.Context, p *models.Person) error {
	cp := *p
	f.people[p.ID] = &cp
	return nil
}

func (f *fakePersonRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*models.Person, error) {
	p, ok := f.people[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePersonRepo) GetByAuthUserID(_ context.Context, tenantID, authUserID uuid.UUID) (*models.Person, error) {
	for _, p := range f.people {
		if p.TenantID == tenantID && p.AuthUserID != nil && *p.AuthUserID == authUserID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePersonRepo) List(context.Context, uuid.UUID, *uuid.UUID, int) ([]*models.Person, error) {
	return nil, nil
}

func (f *fakePersonRepo) Update(_ context.Context, p *models.Person) error {
	cp := *p
	f.people[p.ID] = &cp
	return nil
}

type fakeUnitRoleRepo struct {
	roles map[uuid.UUID]*models.UnitRole
	seq   int

	// people backs ListActiveFeePayersWithPerson; only the snapshot
	// tests set it.
	people *fakePersonRepo
}

func newFakeUnitRoleRepo() *fakeUnitRoleRepo {
	return &fakeUnitRoleRepo{roles: map[uuid.UUID]*models.UnitRole{}}
}

func (f *fakeUnitRoleRepo) Create(_ context.Context, role *models.UnitRole) error {
	f.seq++
	cp := *role
	cp.CreatedAt = time.Unix(int64(f.seq), 0)
	f.roles[role.ID] = &cp
	return nil
}

func (f *fakeUnitRoleRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*models.UnitRole, error) {
	r, ok := f.roles[id]
	if !ok || r.TenantID != tenantID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeUnitRoleRepo) ListByUnitID(_ context.Context, tenantID, unitID uuid.UUID) ([]*models.UnitRole, error) {
	var out []*models.UnitRole
	for _, r := range f.roles {
		if r.TenantID == tenantID && r.UnitID == unitID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUnitRoleRepo) Update(_ context.Context, role *models.UnitRole) error {
	existing, ok := f.roles[role.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *role
	cp.CreatedAt = existing.CreatedAt
	f.roles[role.ID] = &cp
	return nil
}

func (f *fakeUnitRoleRepo) FindActiveFeePayer(
	_ context.Context,
	tenantID, unitID uuid.UUID,
	today time.Time,
	excludeRoleID *uuid.UUID,
) (*models.UnitRole, error) {
	var best *models.UnitRole
	for _, r := range f.roles {
		if r.TenantID != tenantID || r.UnitID != unitID || !r.IsFeePayer {
			continue
		}
		if excludeRoleID != nil && r.ID == *excludeRoleID {
			continue
		}
		if !r.ActiveOn(today) {
			continue
		}
		if best == nil || r.CreatedAt.After(best.CreatedAt) {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeUnitRoleRepo) ListActiveFeePayersWithPerson(_ context.Context, tenantID uuid.UUID, today time.Time) ([]*repositories.FeePayerRow, error) {
	best := map[uuid.UUID]*models.UnitRole{}
	for _, r := range f.roles {
		if r.TenantID != tenantID || !r.IsFeePayer || !r.ActiveOn(today) {
			continue
		}
		if cur, ok := best[r.UnitID]; !ok || r.CreatedAt.After(cur.CreatedAt) {
			best[r.UnitID] = r
		}
	}
	var out []*repositories.FeePayerRow
	for _, r := range best {
		row := &repositories.FeePayerRow{Role: *r}
		if f.people != nil {
			if p := f.people.people[r.PersonID]; p != nil {
				row.Person = *p
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeUnitRoleRepo) CreateReplacingFeePayer(ctx context.Context, role *models.UnitRole, today time.Time) error {
	f.demote(role.TenantID, role.UnitID, today, nil)
	return f.Create(ctx, role)
}

func (f *fakeUnitRoleRepo) UpdateReplacingFeePayer(ctx context.Context, role *models.UnitRole, today time.Time) error {
	f.demote(role.TenantID, role.UnitID, today, &role.ID)
	return f.Update(ctx, role)
}

func (f *fakeUnitRoleRepo) demote(tenantID, unitID uuid.UUID, today time.Time, exclude *uuid.UUID) {
	for _, r := range f.roles {
		if r.TenantID != tenantID || r.UnitID != unitID || !r.IsFeePayer {
			continue
		}
		if exclude != nil && r.ID == *exclude {
			continue
		}
		if r.ActiveOn(today) {
			r.IsFeePayer = false
		}
	}
}

func (f *fakeUnitRoleRepo) activeFeePayerCount(tenantID, unitID uuid.UUID, today time.Time) int {
	n := 0
	for _, r := range f.roles {
		if r.TenantID == tenantID && r.UnitID == unitID && r.IsFeePayer && r.ActiveOn(today) {
			n++
		}
	}
	return n
}

type fakePaymentConfigRepo struct {
	configs map[uuid.UUID]*models.UnitPaymentConfig
	seq     int
}

func newFakePaymentConfigRepo() *fakePaymentConfigRepo {
	return &fakePaymentConfigRepo{configs: map[uuid.UUID]*models.UnitPaymentConfig{}}
}

func (f *fakePaymentConfigRepo) GetActiveByUnitID(_ context.Context, tenantID, unitID uuid.UUID) (*models.UnitPaymentConfig, error) {
	var best *models.UnitPaymentConfig
	for _, c := range f.configs {
		if c.TenantID != tenantID || c.UnitID != unitID || c.EffectiveUntil != nil {
			continue
		}
		if best == nil || c.CreatedAt.After(best.CreatedAt) {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakePaymentConfigRepo) SetActive(_ context.Context, cfg *models.UnitPaymentConfig) error {
	closeDate := cfg.EffectiveFrom.AddDate(0, 0, -1)
	for _, c := range f.configs {
		if c.TenantID == cfg.TenantID && c.UnitID == cfg.UnitID && c.EffectiveUntil == nil {
			d := closeDate
			c.EffectiveUntil = &d
		}
	}
	f.seq++
	cp := *cfg
	cp.CreatedAt = time.Unix(int64(f.seq), 0)
	f.configs[cfg.ID] = &cp
	return nil
}

func (f *fakePaymentConfigRepo) ListByUnitID(_ context.Context, tenantID, unitID uuid.UUID) ([]*models.UnitPaymentConfig, error) {
	var out []*models.UnitPaymentConfig
	for _, c := range f.configs {
		if c.TenantID == tenantID && c.UnitID == unitID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, nil
}

func (f *fakePaymentConfigRepo) UnitIDsWithConfig(_ context.Context, tenantID uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	for _, c := range f.configs {
		if c.TenantID == tenantID {
			out[c.UnitID] = true
		}
	}
	return out, nil
}

func (f *fakePaymentConfigRepo) TenantIDsWithActiveConfig(context.Context) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, c := range f.configs {
		if c.EffectiveUntil == nil && !seen[c.TenantID] {
			seen[c.TenantID] = true
			out = append(out, c.TenantID)
		}
	}
	return out, nil
}

type fakeChargeRepo struct {
	charges map[uuid.UUID]*models.Charge

	// generated records BulkGenerate invocations; generateReturn is the
	// count each invocation reports.
	generated      []time.Time
	generateReturn int
}

func newFakeChargeRepo() *fakeChargeRepo {
	return &fakeChargeRepo{charges: map[uuid.UUID]*models.Charge{}}
}

func (f *fakeChargeRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*models.Charge, error) {
	c, ok := f.charges[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChargeRepo) GetByUnitAndPeriod(_ context.Context, tenantID, unitID uuid.UUID, periodMonth time.Time) (*models.Charge, error) {
	for _, c := range f.charges {
		if c.TenantID == tenantID && c.UnitID == unitID && c.PeriodMonth.Equal(periodMonth) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChargeRepo) ListByPeriod(_ context.Context, tenantID uuid.UUID, periodMonth time.Time) ([]*models.Charge, error) {
	var out []*models.Charge
	for _, c := range f.charges {
		if c.TenantID == tenantID && c.PeriodMonth.Equal(periodMonth) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeChargeRepo) List(context.Context, uuid.UUID, repositories.ChargeListFilter, *uuid.UUID, int) ([]*repositories.ChargeListItem, error) {
	return nil, nil
}

func (f *fakeChargeRepo) BulkGenerate(_ context.Context, _ uuid.UUID, periodMonth time.Time) (int, error) {
	f.generated = append(f.generated, periodMonth)
	return f.generateReturn, nil
}

func (f *fakeChargeRepo) put(c *models.Charge) {
	cp := *c
	f.charges[c.ID] = &cp
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*models.Payment
	charges  *fakeChargeRepo
}

func newFakePaymentRepo(charges *fakeChargeRepo) *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uuid.UUID]*models.Payment{}, charges: charges}
}

func (f *fakePaymentRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) ListByChargeID(_ context.Context, tenantID, chargeID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.TenantID == tenantID && p.ChargeID == chargeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) CreateAndApply(_ context.Context, p *models.Payment) (*models.Charge, error) {
	cp := *p
	f.payments[p.ID] = &cp

	c, ok := f.charges.charges[p.ChargeID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c.AmountPaid += p.Amount
	if c.AmountPaid >= c.AmountDue {
		c.Status = models.ChargeStatusPaid
	} else {
		c.Status = models.ChargeStatusPartial
	}
	out := *c
	return &out, nil
}

func (f *fakePaymentRepo) UpdateAndRecompute(_ context.Context, p *models.Payment) (*models.Charge, error) {
	if _, ok := f.payments[p.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	f.payments[p.ID] = &cp

	c, ok := f.charges.charges[p.ChargeID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	var total int64
	for _, pay := range f.payments {
		if pay.ChargeID == p.ChargeID && pay.TenantID == p.TenantID {
			total += pay.Amount
		}
	}
	c.AmountPaid = total
	if c.Status != models.ChargeStatusWaived {
		switch {
		case total >= c.AmountDue:
			c.Status = models.ChargeStatusPaid
		case total > 0:
			c.Status = models.ChargeStatusPartial
		default:
			c.Status = models.ChargeStatusPending
		}
	}
	out := *c
	return &out, nil
}

type fakeGenerationLogRepo struct {
	logs []*models.ChargeGenerationLog
}

func newFakeGenerationLogRepo() *fakeGenerationLogRepo {
	return &fakeGenerationLogRepo{}
}

func (f *fakeGenerationLogRepo) Create(_ context.Context, l *models.ChargeGenerationLog) error {
	cp := *l
	f.logs = append(f.logs, &cp)
	return nil
}

func (f *fakeGenerationLogRepo) List(_ context.Context, tenantID uuid.UUID, _ *uuid.UUID, limit int) ([]*models.ChargeGenerationLog, error) {
	var out []*models.ChargeGenerationLog
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.logs[i].TenantID == tenantID {
			cp := *f.logs[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func lessUUID(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
