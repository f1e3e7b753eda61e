package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/vendor"
)

const vendorColumns = `id, tenant_id, business_name, display_name, tax_id, email, phone,
       address, bank_account, commission_rate, rating, verification_status,
       is_active, rejection_reason, created_at, updated_at, approved_at`

type VendorRepository struct {
	pool *pgxpool.Pool
}

func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

func scanVendor(row pgx.Row) (*vendor.Entity, error) {
	out := &vendor.Entity{}
	var addressRaw, bankRaw []byte
	err := row.Scan(
		&out.ID, &out.TenantID, &out.BusinessName, &out.DisplayName, &out.TaxID, &out.Email, &out.Phone,
		&addressRaw, &bankRaw, &out.CommissionRate, &out.Rating, &out.VerificationStatus,
		&out.IsActive, &out.RejectionReason, &out.CreatedAt, &out.UpdatedAt, &out.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendor.ErrNotFound
		}
		return nil, err
	}
	if len(addressRaw) > 0 {
		_ = json.Unmarshal(addressRaw, &out.Address)
	}
	if len(bankRaw) > 0 {
		_ = json.Unmarshal(bankRaw, &out.BankAccount)
	}
	return out, nil
}

func (r *VendorRepository) Create(ctx context.Context, tenantID string, in vendor.CreateInput) (*vendor.Entity, error) {
	addressRaw, _ := json.Marshal(in.Address)
	bankRaw, _ := json.Marshal(in.BankAccount)
	q := `
INSERT INTO vendors (
  tenant_id, business_name, display_name, tax_id, email, phone,
  address, bank_account, commission_rate
) VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8::jsonb,$9)
RETURNING ` + vendorColumns
	return scanVendor(r.pool.QueryRow(ctx, q,
		tenantID, in.BusinessName, in.DisplayName, in.TaxID, in.Email, in.Phone,
		addressRaw, bankRaw, in.CommissionRate,
	))
}

func (r *VendorRepository) GetByID(ctx context.Context, tenantID, id string) (*vendor.Entity, error) {
	q := `SELECT ` + vendorColumns + ` FROM vendors WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`
	return scanVendor(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *VendorRepository) List(ctx context.Context, tenantID string, f vendor.ListFilter) ([]vendor.Entity, int64, error) {
	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	where := strings.Builder{}
	where.WriteString(" FROM vendors WHERE tenant_id = $1 AND deleted_at IS NULL")
	args := []any{tenantID}
	argPos := 2
	if strings.TrimSpace(f.Status) != "" {
		where.WriteString(" AND verification_status = $")
		where.WriteString(strconv.Itoa(argPos))
		args = append(args, f.Status)
		argPos++
	}
	if strings.TrimSpace(f.Search) != "" {
		where.WriteString(" AND (business_name ILIKE $")
		where.WriteString(strconv.Itoa(argPos))
		where.WriteString(" OR display_name ILIKE $")
		where.WriteString(strconv.Itoa(argPos))
		where.WriteString(" OR email ILIKE $")
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
	query.WriteString("SELECT " + vendorColumns)
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

	out := make([]vendor.Entity, 0)
	for rows.Next() {
		item, err := scanVendor(rows)
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

func (r *VendorRepository) Update(ctx context.Context, tenantID, id string, in vendor.UpdateInput) (*vendor.Entity, error) {
	addressRaw, _ := json.Marshal(in.Address)
	bankRaw, _ := json.Marshal(in.BankAccount)
	q := `
UPDATE vendors SET
  business_name = $3, display_name = $4, tax_id = $5, email = $6, phone = $7,
  address = $8::jsonb, bank_account = $9::jsonb, commission_rate = $10, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING ` + vendorColumns
	return scanVendor(r.pool.QueryRow(ctx, q,
		tenantID, id, in.BusinessName, in.DisplayName, in.TaxID, in.Email, in.Phone,
		addressRaw, bankRaw, in.CommissionRate,
	))
}

func (r *VendorRepository) UpdateStatus(ctx context.Context, tenantID, id string, in vendor.StatusUpdate) (*vendor.Entity, error) {
	q := `
UPDATE vendors SET
  verification_status = $3, is_active = $4, rejection_reason = $5,
  approved_at = COALESCE($6, approved_at), updated_at = NOW()
WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING ` + vendorColumns
	return scanVendor(r.pool.QueryRow(ctx, q, tenantID, id, in.Status, in.IsActive, in.RejectionReason, in.ApprovedAt))
}

func (r *VendorRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := `UPDATE vendors SET deleted_at = NOW(), updated_at = NOW() WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, q, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return vendor.ErrNotFound
	}
	return nil
}
