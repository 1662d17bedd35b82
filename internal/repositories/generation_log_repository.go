package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/veranda-pm/billing-service/internal/models"
)

type GenerationLogRepository interface {
	Create(ctx context.Context, l *models.ChargeGenerationLog) error
	List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.ChargeGenerationLog, error)
}

type generationLogRepo struct{ db DB }

func NewGenerationLogRepository(db DB) GenerationLogRepository {
	return &generationLogRepo{db: db}
}

// Append-only: no update or delete exists on purpose.
func (r *generationLogRepo) Create(ctx context.Context, l *models.ChargeGenerationLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO charge_generation_logs (
			id, tenant_id, period_month, triggered_by, charges_created, created_at
		) VALUES ($1,$2,$3,$4,$5, NOW())
	`, l.ID, l.TenantID, l.PeriodMonth, l.TriggeredBy, l.ChargesCreated)
	return err
}

func (r *generationLogRepo) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.ChargeGenerationLog, error) {
	q := `
		SELECT id, tenant_id, period_month, triggered_by, charges_created, created_at
		FROM charge_generation_logs
		WHERE tenant_id=$1`
	args := []interface{}{tenantID}
	if after != nil {
		args = append(args, *after)
		q += ` AND id < $2`
	}
	args = append(args, limit)
	q += ` ORDER BY id DESC LIMIT ` + placeholder(len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ChargeGenerationLog
	for rows.Next() {
		var l models.ChargeGenerationLog
		if err := rows.Scan(
			&l.ID, &l.TenantID, &l.PeriodMonth, &l.TriggeredBy, &l.ChargesCreated, &l.CreatedAt,
		); err != nil {
			if err == pgx.ErrNoRows {
				return nil, nil
			}
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
