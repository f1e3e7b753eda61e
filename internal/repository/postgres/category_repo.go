package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/category"
)

const categoryColumns = `id, tenant_id, name, slug, description, parent_id, is_active, created_at, updated_at`

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*category.Entity, error) {
	out := &category.Entity{}
	var parentID *string
	err := row.Scan(&out.ID, &out.TenantID, &out.Name, &out.Slug, &out.Description, &parentID, &out.IsActive, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrNotFound
		}
		return nil, err
	}
	if parentID != nil {
		out.ParentID = *parentID
	}
	return out, nil
}

func (r *CategoryRepository) Create(ctx context.Context, tenantID string, in category.CreateInput) (*category.Entity, error) {
	q := `
INSERT INTO categories (tenant_id, name, slug, description, parent_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + categoryColumns
	return scanCategory(r.pool.QueryRow(ctx, q, tenantID, in.Name, in.Slug, in.Description, nullableID(in.ParentID)))
}

func (r *CategoryRepository) GetByID(ctx context.Context, tenantID, id string) (*category.Entity, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories WHERE tenant_id = $1 AND id = $2`
	return scanCategory(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *CategoryRepository) List(ctx context.Context, tenantID string) ([]category.Entity, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories WHERE tenant_id = $1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]category.Entity, 0)
	for rows.Next() {
		item, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, tenantID, id string, in category.UpdateInput) (*category.Entity, error) {
	q := `
UPDATE categories SET
  name = $3, slug = $4, description = $5, parent_id = $6, is_active = $7, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + categoryColumns
	return scanCategory(r.pool.QueryRow(ctx, q, tenantID, id, in.Name, in.Slug, in.Description, nullableID(in.ParentID), in.IsActive))
}

func (r *CategoryRepository) Delete(ctx context.Context, tenantID, id string) error {
	q := `DELETE FROM categories WHERE tenant_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, q, tenantID, id)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return errors.New("category_in_use")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM categories WHERE tenant_id = $1 AND id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, tenantID, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
