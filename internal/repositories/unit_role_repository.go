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

// FeePayerRow is an active fee-payer role joined with its person.
type FeePayerRow struct {
	Role   models.UnitRole
	Person models.Person
}

type UnitRoleRepository interface {
	Create(ctx context.Context, role *models.UnitRole) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.UnitRole, error)
	ListByUnitID(ctx context.Context, tenantID, unitID uuid.UUID) ([]*models.UnitRole, error)
	Update(ctx context.Context, role *models.UnitRole) error

	// FindActiveFeePayer returns the active fee-payer role for the unit,
	// or nil. "Active" means effective_to IS NULL OR effective_to >= today.
	// With inconsistent data (several actives) the most recently created
	// row is returned as "the" conflicting record.
	FindActiveFeePayer(ctx context.Context, tenantID, unitID uuid.UUID, today time.Time, excludeRoleID *uuid.UUID) (*models.UnitRole, error)

	// ListActiveFeePayersWithPerson returns, per unit, the currently
	// active fee-payer role joined to its person. Most recently created
	// wins when duplicates exist.
	ListActiveFeePayersWithPerson(ctx context.Context, tenantID uuid.UUID, today time.Time) ([]*FeePayerRow, error)

	// CreateReplacingFeePayer demotes every active fee payer of the unit
	// and inserts the new role, atomically.
	CreateReplacingFeePayer(ctx context.Context, role *models.UnitRole, today time.Time) error

	// UpdateReplacingFeePayer demotes every other active fee payer of the
	// unit and applies the update, atomically.
	UpdateReplacingFeePayer(ctx context.Context, role *models.UnitRole, today time.Time) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type unitRoleRepo struct{ db DB }

func NewUnitRoleRepository(db DB) UnitRoleRepository {
	return &unitRoleRepo{db: db}
}

func (r *unitRoleRepo) Create(ctx context.Context, role *models.UnitRole) error {
	return r.create(ctx, r.db, role)
}

func (r *unitRoleRepo) create(ctx context.Context, db DB, role *models.UnitRole) error {
	_, err := db.Exec(ctx, `
		INSERT INTO unit_roles (
			id, tenant_id, unit_id, person_id, role_type,
			effective_from, effective_to, is_fee_payer,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW())
	`,
		role.ID, role.TenantID, role.UnitID, role.PersonID, role.RoleType,
		role.EffectiveFrom, role.EffectiveTo, role.IsFeePayer,
	)
	return err
}

func (r *unitRoleRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.UnitRole, error) {
	row := r.db.QueryRow(ctx, baseSelectUnitRole()+" WHERE tenant_id=$1 AND id=$2", tenantID, id)
	return scanUnitRole(row)
}

func (r *unitRoleRepo) ListByUnitID(ctx context.Context, tenantID, unitID uuid.UUID) ([]*models.UnitRole, error) {
	rows, err := r.db.Query(ctx,
		baseSelectUnitRole()+" WHERE tenant_id=$1 AND unit_id=$2 ORDER BY effective_from DESC, created_at DESC",
		tenantID, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnitRoles(rows)
}

func (r *unitRoleRepo) Update(ctx context.Context, role *models.UnitRole) error {
	return r.update(ctx, r.db, role)
}

func (r *unitRoleRepo) update(ctx context.Context, db DB, role *models.UnitRole) error {
	tag, err := db.Exec(ctx, `
		UPDATE unit_roles SET
		      role_type=$1, effective_from=$2, effective_to=$3, is_fee_payer=$4,
		      updated_at=NOW()
		WHERE tenant_id=$5 AND id=$6
	`,
		role.RoleType, role.EffectiveFrom, role.EffectiveTo, role.IsFeePayer,
		role.TenantID, role.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *unitRoleRepo) FindActiveFeePayer(
	ctx context.Context,
	tenantID, unitID uuid.UUID,
	today time.Time,
	excludeRoleID *uuid.UUID,
) (*models.UnitRole, error) {
	q := baseSelectUnitRole() + `
		WHERE tenant_id=$1 AND unit_id=$2 AND is_fee_payer
		  AND (effective_to IS NULL OR effective_to >= $3)`
	args := []interface{}{tenantID, unitID, today}
	if excludeRoleID != nil {
		q += ` AND id <> $4`
		args = append(args, *excludeRoleID)
	}
	q += ` ORDER BY created_at DESC LIMIT 1`

	row := r.db.QueryRow(ctx, q, args...)
	return scanUnitRole(row)
}

func (r *unitRoleRepo) ListActiveFeePayersWithPerson(
	ctx context.Context,
	tenantID uuid.UUID,
	today time.Time,
) ([]*FeePayerRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (r.unit_id)
		       r.id, r.tenant_id, r.unit_id, r.person_id, r.role_type,
		       r.effective_from, r.effective_to, r.is_fee_payer,
		       r.created_at, r.updated_at,
		       p.id, p.tenant_id, p.full_name, p.email, p.phone, p.auth_user_id,
		       p.created_at, p.updated_at
		FROM unit_roles r
		JOIN people p ON p.id = r.person_id
		WHERE r.tenant_id=$1 AND r.is_fee_payer
		  AND (r.effective_to IS NULL OR r.effective_to >= $2)
		ORDER BY r.unit_id, r.created_at DESC
	`, tenantID, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*FeePayerRow
	for rows.Next() {
		var fp FeePayerRow
		if err := rows.Scan(
			&fp.Role.ID, &fp.Role.TenantID, &fp.Role.UnitID, &fp.Role.PersonID, &fp.Role.RoleType,
			&fp.Role.EffectiveFrom, &fp.Role.EffectiveTo, &fp.Role.IsFeePayer,
			&fp.Role.CreatedAt, &fp.Role.UpdatedAt,
			&fp.Person.ID, &fp.Person.TenantID, &fp.Person.FullName, &fp.Person.Email, &fp.Person.Phone, &fp.Person.AuthUserID,
			&fp.Person.CreatedAt, &fp.Person.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &fp)
	}
	return out, rows.Err()
}

func (r *unitRoleRepo) CreateReplacingFeePayer(ctx context.Context, role *models.UnitRole, today time.Time) error {
	return WithTx(ctx, r.db, func(tx DB) error {
		if err := r.demoteActiveFeePayers(ctx, tx, role.TenantID, role.UnitID, today, nil); err != nil {
			return err
		}
		return r.create(ctx, tx, role)
	})
}

func (r *unitRoleRepo) UpdateReplacingFeePayer(ctx context.Context, role *models.UnitRole, today time.Time) error {
	return WithTx(ctx, r.db, func(tx DB) error {
		if err := r.demoteActiveFeePayers(ctx, tx, role.TenantID, role.UnitID, today, &role.ID); err != nil {
			return err
		}
		return r.update(ctx, tx, role)
	})
}

// demoteActiveFeePayers flips is_fee_payer off for every active fee payer
// of the unit. Demoting all of them (not just one) also repairs rows that
// pre-date the partial unique index.
func (r *unitRoleRepo) demoteActiveFeePayers(
	ctx context.Context,
	db DB,
	tenantID, unitID uuid.UUID,
	today time.Time,
	excludeRoleID *uuid.UUID,
) error {
	q := `
		UPDATE unit_roles SET is_fee_payer=FALSE, updated_at=NOW()
		WHERE tenant_id=$1 AND unit_id=$2 AND is_fee_payer
		  AND (effective_to IS NULL OR effective_to >= $3)`
	args := []interface{}{tenantID, unitID, today}
	if excludeRoleID != nil {
		q += ` AND id <> $4`
		args = append(args, *excludeRoleID)
	}
	_, err := db.Exec(ctx, q, args...)
	return err
}

/* ---------- internals ---------- */

func baseSelectUnitRole() string {
	return `
		SELECT id, tenant_id, unit_id, person_id, role_type,
		effective_from, effective_to, is_fee_payer,
		created_at, updated_at
		FROM unit_roles`
}

func scanUnitRole(row pgx.Row) (*models.UnitRole, error) {
	var role models.UnitRole
	if err := row.Scan(
		&role.ID, &role.TenantID, &role.UnitID, &role.PersonID, &role.RoleType,
		&role.EffectiveFrom, &role.EffectiveTo, &role.IsFeePayer,
		&role.CreatedAt, &role.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func scanUnitRoles(rows pgx.Rows) ([]*models.UnitRole, error) {
	var out []*models.UnitRole
	for rows.Next() {
		role, err := scanUnitRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}
