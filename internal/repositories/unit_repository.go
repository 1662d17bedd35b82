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

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error
	CreateMany(ctx context.Context, list []models.Unit) error

	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Unit, error)
	ListByBuildingID(ctx context.Context, tenantID, buildingID uuid.UUID) ([]*models.Unit, error)
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]*models.Unit, error)
	List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.Unit, error)

	Update(ctx context.Context, u *models.Unit) error
	CountByBuildingID(ctx context.Context, tenantID, buildingID uuid.UUID) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type unitRepo struct{ db DB }

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO units (
			id, tenant_id, building_id, unit_number, floor,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
	`, u.ID, u.TenantID, u.BuildingID, u.UnitNumber, u.Floor)
	return err
}

func (r *unitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *unitRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Unit, error) {
	row := r.db.QueryRow(ctx, baseSelectUnit()+" WHERE tenant_id=$1 AND id=$2", tenantID, id)
	return scanUnit(row)
}

func (r *unitRepo) ListByBuildingID(ctx context.Context, tenantID, buildingID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx,
		baseSelectUnit()+" WHERE tenant_id=$1 AND building_id=$2 ORDER BY unit_number",
		tenantID, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

func (r *unitRepo) ListAll(ctx context.Context, tenantID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE tenant_id=$1 ORDER BY building_id, unit_number", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

func (r *unitRepo) List(ctx context.Context, tenantID uuid.UUID, after *uuid.UUID, limit int) ([]*models.Unit, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after != nil {
		rows, err = r.db.Query(ctx,
			baseSelectUnit()+" WHERE tenant_id=$1 AND id < $2 ORDER BY id DESC LIMIT $3",
			tenantID, *after, limit)
	} else {
		rows, err = r.db.Query(ctx,
			baseSelectUnit()+" WHERE tenant_id=$1 ORDER BY id DESC LIMIT $2",
			tenantID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

// Update only touches the mutable fields; units referenced by charges are
// otherwise immutable.
func (r *unitRepo) Update(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
		UPDATE units SET unit_number=$1, floor=$2, updated_at=NOW()
		WHERE tenant_id=$3 AND id=$4
	`, u.UnitNumber, u.Floor, u.TenantID, u.ID)
	return err
}

func (r *unitRepo) CountByBuildingID(ctx context.Context, tenantID, buildingID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM units WHERE tenant_id=$1 AND building_id=$2`,
		tenantID, buildingID).Scan(&n)
	return n, err
}

/* ---------- internals ---------- */

func baseSelectUnit() string {
	return `
		SELECT id, tenant_id, building_id, unit_number, floor,
		created_at, updated_at
		FROM units`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.TenantID, &u.BuildingID,
		&u.UnitNumber, &u.Floor,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func scanUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
