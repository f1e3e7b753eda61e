package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/product"
)

const productColumns = `id, tenant_id, vendor_id, name, sku, description, price, currency,
       status, verification_status, is_active, rejection_reason,
       inventory, category_ids, variants, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*product.Entity, error) {
	out := &product.Entity{}
	var inventoryRaw, variantsRaw []byte
	err := row.Scan(
		&out.ID, &out.TenantID, &out.VendorID, &out.Name, &out.SKU, &out.Description, &out.Price, &out.Currency,
		&out.Status, &out.VerificationStatus, &out.IsActive, &out.RejectionReason,
		&inventoryRaw, &out.CategoryIDs, &variantsRaw, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, err
	}
	if len(inventoryRaw) > 0 {
		_ = json.Unmarshal(inventoryRaw, &out.Inventory)
	}
	if len(variantsRaw) > 0 {
		_ = json.Unmarshal(variantsRaw, &out.Variants)
	}
	if out.CategoryIDs == nil {
		out.CategoryIDs = []string{}
	}
	if out.Variants == nil {
		out.Variants = []product.Variant{}
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, tenantID string, in product.CreateInput) (*product.Entity, error) {
	inventoryRaw, _ := json.Marshal(in.Inventory)
	variantsRaw, _ := json.Marshal(in.Variants)
	q := `
INSERT INTO products (
  tenant_id, vendor_id, name, sku, description, price, currency,
  inventory, category_ids, variants
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9,$10::jsonb)
RETURNING ` + productColumns
	return scanProduct(r.pool.QueryRow(ctx, q,
		tenantID, in.VendorID, in.Name, in.SKU, in.Description, in.Price, in.Currency,
		inventoryRaw, in.CategoryIDs, variantsRaw,
	))
}

func (r *ProductRepository) GetByID(ctx context.Context, tenantID, id string) (*product.Entity, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`
	return scanProduct(r.pool.QueryRow(ctx, q, tenantID, id))
}

// tabPredicate maps a dashboard tab to its SQL filter. The published tab means
// verified and active; rejected is terminal regardless of lifecycle status.
func tabPredicate(tab string) string {
	switch tab {
	case product.TabPublished:
		return " AND verification_status = 'approved' AND is_active = TRUE"
	case product.TabDraft:
		return " AND status = 'draft'"
	case product.TabPending:
		return " AND verification_status = 'pending' AND status <> 'draft'"
	case product.TabRejected:
		return " AND verification_status = 'rejected'"
	default:
		return ""
	}
}

func (r *ProductRepository) List(ctx context.Context, tenantID string, f product.ListFilter) ([]product.Entity, int64, error) {
	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	where := strings.Builder{}
	where.WriteString(" FROM products WHERE tenant_id = $1 AND deleted_at IS NULL")
	args := []any{tenantID}
	argPos := 2
	if strings.TrimSpace(f.VendorID) != "" {
		where.WriteString(" AND vendor_id = $")
		where.WriteString(strconv.Itoa(argPos))
		args = append(args, f.VendorID)
		argPos++
	}
	where.WriteString(tabPredicate(f.Tab))
	if strings.TrimSpace(f.Search) != "" {
		where.WriteString(" AND (name ILIKE $")
		where.WriteString(strconv.Itoa(argPos))
		where.WriteString(" OR sku ILIKE $")
		where.WriteString(strconv.Itoa(argPos))
		where.WriteString(")")
		args = append(args, "%"+strings.TrimSpace(f.Search)+"%")
		argPos++
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*)"+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := strings.Builder{}
	query.WriteString("SELECT " + productColumns)
	query.WriteString(where.String())
	query.WriteString(" ORDER BY created_at DESC LIMIT $")
	query.WriteString(strconv.Itoa(argPos))
	args = append(args, f.PerPage)
	argPos++
	query.WriteString(" OFFSET $")
	query.WriteString(strconv.Itoa(argPos))
	args = append(args, (f.Page-1)*f.PerPage)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]product.Entity, 0)
	for rows.Next() {
		item, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, tenantID, id string, in product.UpdateInput) (*product.Entity, error) {
	inventoryRaw, _ := json.Marshal(in.Inventory)
	variantsRaw, _ := json.Marshal(in.Variants)
	q := `
UPDATE products SET
  name = $3, sku = $4, description = $5, price = $6, currency = $7,
  inventory = $8::jsonb, category_ids = $9, variants = $10::jsonb, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING ` + productColumns
	return scanProduct(r.pool.QueryRow(ctx, q,
		tenantID, id, in.Name, in.SKU, in.Description, in.Price, in.Currency,
		inventoryRaw, in.CategoryIDs, variantsRaw,
	))
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, tenantID, id string, in product.StatusUpdate) (*product.Entity, error) {
	q := `
UPDATE products SET
  status = $3, verification_status = $4, is_active = $5, rejection_reason = $6, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING ` + productColumns
	return scanProduct(r.pool.QueryRow(ctx, q, tenantID, id, in.Status, in.VerificationStatus, in.IsActive, in.RejectionReason))
}

func (r *ProductRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := `UPDATE products SET deleted_at = NOW(), updated_at = NOW() WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, q, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) CountTabs(ctx context.Context, tenantID, vendorID string) (*product.TabCounts, error) {
	where := " FROM products WHERE tenant_id = $1 AND deleted_at IS NULL"
	args := []any{tenantID}
	if strings.TrimSpace(vendorID) != "" {
		where += " AND vendor_id = $2"
		args = append(args, vendorID)
	}

	q := `
SELECT
  COUNT(*) FILTER (WHERE verification_status = 'approved' AND is_active = TRUE),
  COUNT(*) FILTER (WHERE status = 'draft'),
  COUNT(*) FILTER (WHERE verification_status = 'pending' AND status <> 'draft'),
  COUNT(*) FILTER (WHERE verification_status = 'rejected'),
  COUNT(*)` + where

	out := &product.TabCounts{}
	err := r.pool.QueryRow(ctx, q, args...).Scan(&out.Published, &out.Draft, &out.Pending, &out.Rejected, &out.All)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepository) ExistsSKU(ctx context.Context, tenantID, sku string) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM products WHERE tenant_id = $1 AND sku = $2 AND deleted_at IS NULL)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, tenantID, sku).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
