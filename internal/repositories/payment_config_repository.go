package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/veranda-pm/billing-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PaymentConfigRepository interface {
	// GetActiveByUnitID returns the row with effective_until IS NULL, most
	// recently created first as a defensive tie-break, or nil.
	GetActiveByUnitID(ctx context.Context, tenantID, unitID uuid.UUID) (*models.UnitPaymentConfig, error)

	// SetActive closes the current active row at effectiveFrom - 1 day and
	// inserts the new active row, atomically. No delete exists; history is
	// append-only via closed date ranges.
	SetActive(ctx context.Context, cfg *models.UnitPaymentConfig) error

	ListByUnitID(ctx context.Context, tenantID, unitID uuid.UUID) ([]*models.UnitPaymentConfig, error)

	// UnitIDsWithConfig reports which units have any config row at all,
	// active or closed. The snapshot needs this to tell no_config apart
	// from a merely un-generated period.
	UnitIDsWithConfig(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]bool, error)

	// TenantIDsWithActiveConfig backs the scheduled generation run.
	TenantIDsWithActiveConfig(ctx context.Context) ([]uuid.UUID, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type paymentConfigRepo struct{ db DB }

func NewPaymentConfigRepository(db DB) PaymentConfigRepository {
	return &paymentConfigRepo{db: db}
}

func (r *paymentConfigRepo) GetActiveByUnitID(ctx context.Context, tenantID, unitID uuid.UUID) (*models.UnitPaymentConfig, error) {
	row := r.db.QueryRow(ctx, baseSelectPaymentConfig()+`
		WHERE tenant_id=$1 AND unit_id=$2 AND effective_until IS NULL
		ORDER BY created_at DESC LIMIT 1`,
		tenantID, unitID)
	return scanPaymentConfig(row)
}

func (r *paymentConfigRepo) SetActive(ctx context.Context, cfg *models.UnitPaymentConfig) error {
	closeDate := cfg.EffectiveFrom.AddDate(0, 0, -1)
	return WithTx(ctx, r.db, func(tx DB) error {
		if _, err := tx.Exec(ctx, `
			UPDATE unit_payment_configs SET effective_until=$1
			WHERE tenant_id=$2 AND unit_id=$3 AND effective_until IS NULL
		`, closeDate, cfg.TenantID, cfg.UnitID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO unit_payment_configs (
				id, tenant_id, unit_id, monthly_amount,
				effective_from, effective_until, created_by, created_at
			) VALUES ($1,$2,$3,$4,$5,NULL,$6, NOW())
		`,
			cfg.ID, cfg.TenantID, cfg.UnitID, cfg.MonthlyAmount,
			cfg.EffectiveFrom, cfg.CreatedBy,
		)
		return err
	})
}

func (r *paymentConfigRepo) ListByUnitID(ctx context.Context, tenantID, unitID uuid.UUID) ([]*models.UnitPaymentConfig, error) {
	rows, err := r.db.Query(ctx,
		baseSelectPaymentConfig()+" WHERE tenant_id=$1 AND unit_id=$2 ORDER BY effective_from DESC",
		tenantID, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UnitPaymentConfig
	for rows.Next() {
		cfg, err := scanPaymentConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

func (r *paymentConfigRepo) UnitIDsWithConfig(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT unit_id FROM unit_payment_configs WHERE tenant_id=$1`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (r *paymentConfigRepo) TenantIDsWithActiveConfig(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT tenant_id FROM unit_payment_configs WHERE effective_until IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

/* ---------- internals ---------- */

func baseSelectPaymentConfig() string {
	return `
		SELECT id, tenant_id, unit_id, monthly_amount,
		effective_from, effective_until, created_by, created_at
		FROM unit_payment_configs`
}

func scanPaymentConfig(row pgx.Row) (*models.UnitPaymentConfig, error) {
	var cfg models.UnitPaymentConfig
	var until *time.Time
	if err := row.Scan(
		&cfg.ID, &cfg.TenantID, &cfg.UnitID, &cfg.MonthlyAmount,
		&cfg.EffectiveFrom, &until, &cfg.CreatedBy, &cfg.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	cfg.EffectiveUntil = until
	return &cfg, nil
}
