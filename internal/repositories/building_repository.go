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

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Building, error)
	List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.Building, error)
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]*models.Building, error)
	Update(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	DistinctTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type buildingRepo struct{ db DB }

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO buildings (
			id, tenant_id, name, address, created_at, updated_at
		) VALUES ($1,$2,$3,$4, NOW(), NOW())
	`, b.ID, b.TenantID, b.Name, b.Address)
	return err
}

func (r *buildingRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE tenant_id=$1 AND id=$2", tenantID, id)
	return scanBuilding(row)
}

// List pages in primary-key-descending order; after is the id of the last
// row of the previous page.
func (r *buildingRepo) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.Building, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after != nil {
		rows, err = r.db.Query(ctx,
			baseSelectBuilding()+" WHERE tenant_id=$1 AND id < $2 ORDER BY id DESC LIMIT $3",
			tenantID, *after, limit)
	} else {
		rows, err = r.db.Query(ctx,
			baseSelectBuilding()+" WHERE tenant_id=$1 ORDER BY id DESC LIMIT $2",
			tenantID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBuildings(rows)
}

func (r *buildingRepo) ListAll(ctx context.Context, tenantID uuid.UUID) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" WHERE tenant_id=$1 ORDER BY name", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBuildings(rows)
}

func (r *buildingRepo) Update(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		UPDATE buildings SET name=$1, address=$2, updated_at=NOW()
		WHERE tenant_id=$3 AND id=$4
	`, b.Name, b.Address, b.TenantID, b.ID)
	return err
}

func (r *buildingRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM buildings WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DistinctTenantIDs backs the scheduled generation run.
func (r *buildingRepo) DistinctTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT tenant_id FROM buildings`)
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

func baseSelectBuilding() string {
	return `
		SELECT id, tenant_id, name, address, created_at, updated_at
		FROM buildings`
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(
		&b.ID, &b.TenantID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func scanBuildings(rows pgx.Rows) ([]*models.Building, error) {
	var out []*models.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
