package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/role"
)

const roleColumns = `id, tenant_id, name, slug, permissions, created_at, updated_at`

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func scanRole(row pgx.Row) (*role.Role, error) {
	out := &role.Role{}
	err := row.Scan(&out.ID, &out.TenantID, &out.Name, &out.Slug, &out.Permissions, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, role.ErrNotFound
		}
		return nil, err
	}
	if out.Permissions == nil {
		out.Permissions = []string{}
	}
	return out, nil
}

func (r *RoleRepository) Create(ctx context.Context, tenantID string, in role.Input) (*role.Role, error) {
	q := `
INSERT INTO roles (tenant_id, name, slug, permissions)
VALUES ($1,$2,$3,$4)
RETURNING ` + roleColumns
	return scanRole(r.pool.QueryRow(ctx, q, tenantID, in.Name, in.Slug, in.Permissions))
}

func (r *RoleRepository) GetByID(ctx context.Context, tenantID, id string) (*role.Role, error) {
	q := `SELECT ` + roleColumns + ` FROM roles WHERE tenant_id = $1 AND id = $2`
	return scanRole(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *RoleRepository) GetBySlug(ctx context.Context, tenantID, slug string) (*role.Role, error) {
	q := `SELECT ` + roleColumns + ` FROM roles WHERE tenant_id = $1 AND slug = $2`
	return scanRole(r.pool.QueryRow(ctx, q, tenantID, slug))
}

func (r *RoleRepository) List(ctx context.Context, tenantID string) ([]role.Role, error) {
	q := `SELECT ` + roleColumns + ` FROM roles WHERE tenant_id = $1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Role, 0)
	for rows.Next() {
		item, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *RoleRepository) Update(ctx context.Context, tenantID, id string, in role.Input) (*role.Role, error) {
	q := `
UPDATE roles SET name = $3, slug = $4, permissions = $5, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + roleColumns
	return scanRole(r.pool.QueryRow(ctx, q, tenantID, id, in.Name, in.Slug, in.Permissions))
}

func (r *RoleRepository) Delete(ctx context.Context, tenantID, id string) error {
	q := `DELETE FROM roles WHERE tenant_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, q, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return role.ErrNotFound
	}
	return nil
}
