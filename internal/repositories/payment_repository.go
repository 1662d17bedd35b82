package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/veranda-pm/billing-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PaymentRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Payment, error)
	ListByChargeID(ctx context.Context, tenantID, chargeID uuid.UUID) ([]*models.Payment, error)

	// CreateAndApply inserts the payment and folds its amount into the
	// charge's amount_paid and derived status, atomically. Returns the
	// updated charge.
	CreateAndApply(ctx context.Context, p *models.Payment) (*models.Charge, error)

	// UpdateAndRecompute overwrites the payment row and re-derives the
	// charge's amount_paid/status from the sum of its payments,
	// atomically. Waived charges keep their status.
	UpdateAndRecompute(ctx context.Context, p *models.Payment) (*models.Charge, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type paymentRepo struct{ db DB }

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE tenant_id=$1 AND id=$2", tenantID, id)
	return scanPayment(row)
}

func (r *paymentRepo) ListByChargeID(ctx context.Context, tenantID, chargeID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx,
		baseSelectPayment()+" WHERE tenant_id=$1 AND charge_id=$2 ORDER BY paid_at DESC, created_at DESC",
		tenantID, chargeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) CreateAndApply(ctx context.Context, p *models.Payment) (*models.Charge, error) {
	var updated *models.Charge
	err := WithTx(ctx, r.db, func(tx DB) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO payments (
				id, tenant_id, charge_id, amount, method, paid_at, notes,
				recorded_by, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW())
		`,
			p.ID, p.TenantID, p.ChargeID, p.Amount, p.Method, p.PaidAt, p.Notes,
			p.RecordedBy,
		); err != nil {
			return err
		}

		row := tx.QueryRow(ctx, `
			UPDATE charges SET
			      amount_paid = amount_paid + $1,
			      status = CASE WHEN amount_paid + $1 >= amount_due
			                    THEN 'paid' ELSE 'partial' END,
			      updated_at = NOW()
			WHERE tenant_id=$2 AND id=$3
			RETURNING id, tenant_id, unit_id, period_month,
			          amount_due, amount_paid, status, due_date,
			          created_at, updated_at
		`, p.Amount, p.TenantID, p.ChargeID)

		c, err := scanCharge(row)
		if err != nil {
			return err
		}
		if c == nil {
			return pgx.ErrNoRows
		}
		updated = c
		return nil
	})
	return updated, err
}

func (r *paymentRepo) UpdateAndRecompute(ctx context.Context, p *models.Payment) (*models.Charge, error) {
	var updated *models.Charge
	err := WithTx(ctx, r.db, func(tx DB) error {
		tag, err := tx.Exec(ctx, `
			UPDATE payments SET amount=$1, method=$2, paid_at=$3, notes=$4, updated_at=NOW()
			WHERE tenant_id=$5 AND id=$6
		`, p.Amount, p.Method, p.PaidAt, p.Notes, p.TenantID, p.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		row := tx.QueryRow(ctx, `
			UPDATE charges c SET
			      amount_paid = s.total,
			      status = CASE WHEN c.status = 'waived' THEN c.status
			                    WHEN s.total >= c.amount_due THEN 'paid'
			                    WHEN s.total > 0 THEN 'partial'
			                    ELSE 'pending' END,
			      updated_at = NOW()
			FROM (
				SELECT COALESCE(SUM(amount), 0) AS total
				FROM payments WHERE tenant_id=$1 AND charge_id=$2
			) s
			WHERE c.tenant_id=$1 AND c.id=$2
			RETURNING c.id, c.tenant_id, c.unit_id, c.period_month,
			          c.amount_due, c.amount_paid, c.status, c.due_date,
			          c.created_at, c.updated_at
		`, p.TenantID, p.ChargeID)

		c, err := scanCharge(row)
		if err != nil {
			return err
		}
		if c == nil {
			return pgx.ErrNoRows
		}
		updated = c
		return nil
	})
	return updated, err
}

/* ---------- internals ---------- */

func baseSelectPayment() string {
	return `
		SELECT id, tenant_id, charge_id, amount, method, paid_at, notes,
		recorded_by, created_at, updated_at
		FROM payments`
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(
		&p.ID, &p.TenantID, &p.ChargeID, &p.Amount, &p.Method, &p.PaidAt, &p.Notes,
		&p.RecordedBy, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
