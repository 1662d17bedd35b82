package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/veranda-pm/billing-service/internal/models"
)

type PersonRepository interface {
	Create(ctx context.Context, p *models.Person) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Person, error)
	GetByAuthUserID(ctx context.Context, tenantID, authUserID uuid.UUID) (*models.Person, error)
	List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.Person, error)
	Update(ctx context.Context, p *models.Person) error
}

type personRepo struct{ db DB }

func NewPersonRepository(db DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, p *models.Person) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO people (
			id, tenant_id, full_name, email, phone, auth_user_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
	`, p.ID, p.TenantID, p.FullName, p.Email, p.Phone, p.AuthUserID)
	return err
}

func (r *personRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Person, error) {
	row := r.db.QueryRow(ctx, baseSelectPerson()+" WHERE tenant_id=$1 AND id=$2", tenantID, id)
	return scanPerson(row)
}

// GetByAuthUserID resolves the acting operator to their Person row, used
// to stamp recorded_by / created_by.
func (r *personRepo) GetByAuthUserID(ctx context.Context, tenantID, authUserID uuid.UUID) (*models.Person, error) {
	row := r.db.QueryRow(ctx,
		baseSelectPerson()+" WHERE tenant_id=$1 AND auth_user_id=$2 LIMIT 1",
		tenantID, authUserID)
	return scanPerson(row)
}

func (r *personRepo) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.Person, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after != nil {
		rows, err = r.db.Query(ctx,
			baseSelectPerson()+" WHERE tenant_id=$1 AND id < $2 ORDER BY id DESC LIMIT $3",
			tenantID, *after, limit)
	} else {
		rows, err = r.db.Query(ctx,
			baseSelectPerson()+" WHERE tenant_id=$1 ORDER BY id DESC LIMIT $2",
			tenantID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *personRepo) Update(ctx context.Context, p *models.Person) error {
	_, err := r.db.Exec(ctx, `
		UPDATE people SET full_name=$1, email=$2, phone=$3, auth_user_id=$4, updated_at=NOW()
		WHERE tenant_id=$5 AND id=$6
	`, p.FullName, p.Email, p.Phone, p.AuthUserID, p.TenantID, p.ID)
	return err
}

/* ---------- internals ---------- */

func baseSelectPerson() string {
	return `
		SELECT id, tenant_id, full_name, email, phone, auth_user_id,
		created_at, updated_at
		FROM people`
}

func scanPerson(row pgx.Row) (*models.Person, error) {
	var p models.Person
	if err := row.Scan(
		&p.ID, &p.TenantID, &p.FullName, &p.Email, &p.Phone, &p.AuthUserID,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
