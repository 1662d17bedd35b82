package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/veranda-pm/billing-service/internal/models"
)

// ChargeListItem is a charge joined with its unit/building identity, as
// the listing endpoint returns it.
type ChargeListItem struct {
	Charge       models.Charge
	UnitNumber   string
	BuildingID   uuid.UUID
	BuildingName string
}

// ChargeListFilter narrows the period listing. Statuses filters on the
// stored status column; Overdue additionally requires due_date < Today.
type ChargeListFilter struct {
	PeriodMonth time.Time
	BuildingID  *uuid.UUID
	Statuses    []models.ChargeStatus
	Overdue     bool
	Today       time.Time
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ChargeRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Charge, error)
	GetByUnitAndPeriod(ctx context.Context, tenantID, unitID uuid.UUID, periodMonth time.Time) (*models.Charge, error)
	ListByPeriod(ctx context.Context, tenantID uuid.UUID, periodMonth time.Time) ([]*models.Charge, error)

	// List pages the joined listing ordered by building_id DESC,
	// created_at DESC, id DESC. after is the id of the last row of the
	// previous page; its sort keys are resolved by subquery.
	List(ctx context.Context, tenantID uuid.UUID, f ChargeListFilter, after *uuid.UUID, limit int) ([]*ChargeListItem, error)

	// BulkGenerate invokes the external generation procedure for the
	// period and returns the number of charges inserted. The procedure
	// only fills gaps, so re-invocation is idempotent.
	BulkGenerate(ctx context.Context, tenantID uuid.UUID, periodMonth time.Time) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type chargeRepo struct{ db DB }

func NewChargeRepository(db DB) ChargeRepository {
	return &chargeRepo{db: db}
}

func (r *chargeRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Charge, error) {
	row := r.db.QueryRow(ctx, baseSelectCharge()+" WHERE tenant_id=$1 AND id=$2", tenantID, id)
	return scanCharge(row)
}

func (r *chargeRepo) GetByUnitAndPeriod(ctx context.Context, tenantID, unitID uuid.UUID, periodMonth time.Time) (*models.Charge, error) {
	row := r.db.QueryRow(ctx,
		baseSelectCharge()+" WHERE tenant_id=$1 AND unit_id=$2 AND period_month=$3",
		tenantID, unitID, periodMonth)
	return scanCharge(row)
}

func (r *chargeRepo) ListByPeriod(ctx context.Context, tenantID uuid.UUID, periodMonth time.Time) ([]*models.Charge, error) {
	rows, err := r.db.Query(ctx,
		baseSelectCharge()+" WHERE tenant_id=$1 AND period_month=$2",
		tenantID, periodMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *chargeRepo) List(
	ctx context.Context,
	tenantID uuid.UUID,
	f ChargeListFilter,
	after *uuid.UUID,
	limit int,
) ([]*ChargeListItem, error) {
	q := `
		SELECT c.id, c.tenant_id, c.unit_id, c.period_month,
		       c.amount_due, c.amount_paid, c.status, c.due_date,
		       c.created_at, c.updated_at,
		       u.unit_number, b.id, b.name
		FROM charges c
		JOIN units u     ON u.id = c.unit_id
		JOIN buildings b ON b.id = u.building_id
		WHERE c.tenant_id = $1 AND c.period_month = $2`
	args := []interface{}{tenantID, f.PeriodMonth}

	if f.BuildingID != nil {
		args = append(args, *f.BuildingID)
		q += ` AND b.id = ` + placeholder(len(args))
	}
	if f.Overdue {
		args = append(args, f.Today)
		q += ` AND c.status IN ('pending','partial') AND c.due_date < ` + placeholder(len(args))
	} else if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		q += ` AND c.status = ANY(` + placeholder(len(args)) + `)`
	}
	if after != nil {
		args = append(args, *after)
		p := placeholder(len(args))
		q += `
		  AND (u.building_id, c.created_at, c.id) < (
			SELECT u2.building_id, c2.created_at, c2.id
			FROM charges c2 JOIN units u2 ON u2.id = c2.unit_id
			WHERE c2.id = ` + p + ` AND c2.tenant_id = $1)`
	}

	args = append(args, limit)
	q += `
		ORDER BY u.building_id DESC, c.created_at DESC, c.id DESC
		LIMIT ` + placeholder(len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ChargeListItem
	for rows.Next() {
		var item ChargeListItem
		if err := rows.Scan(
			&item.Charge.ID, &item.Charge.TenantID, &item.Charge.UnitID, &item.Charge.PeriodMonth,
			&item.Charge.AmountDue, &item.Charge.AmountPaid, &item.Charge.Status, &item.Charge.DueDate,
			&item.Charge.CreatedAt, &item.Charge.UpdatedAt,
			&item.UnitNumber, &item.BuildingID, &item.BuildingName,
		); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

func (r *chargeRepo) BulkGenerate(ctx context.Context, tenantID uuid.UUID, periodMonth time.Time) (int, error) {
	var created int
	err := r.db.QueryRow(ctx,
		`SELECT generate_monthly_charges($1, $2)`,
		tenantID, periodMonth).Scan(&created)
	return created, err
}

/* ---------- internals ---------- */

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func baseSelectCharge() string {
	return `
		SELECT id, tenant_id, unit_id, period_month,
		amount_due, amount_paid, status, due_date,
		created_at, updated_at
		FROM charges`
}

func scanCharge(row pgx.Row) (*models.Charge, error) {
	var c models.Charge
	if err := row.Scan(
		&c.ID, &c.TenantID, &c.UnitID, &c.PeriodMonth,
		&c.AmountDue, &c.AmountPaid, &c.Status, &c.DueDate,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
