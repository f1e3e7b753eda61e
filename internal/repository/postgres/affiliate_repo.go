package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/affiliate"
)

const affiliateColumns = `id, tenant_id, program, vendor_id, first_name, last_name, email, phone,
       commission_rate, social_media, bank_account, status, is_active,
       rejection_reason, created_at, updated_at, approved_at`

type AffiliateRepository struct {
	pool *pgxpool.Pool
}

func NewAffiliateRepository(pool *pgxpool.Pool) *AffiliateRepository {
	return &AffiliateRepository{pool: pool}
}

func scanAffiliate(row pgx.Row) (*affiliate.Entity, error) {
	out := &affiliate.Entity{}
	var socialRaw, bankRaw []byte
	var vendorID *string
	err := row.Scan(
		&out.ID, &out.TenantID, &out.Program, &vendorID, &out.FirstName, &out.LastName, &out.Email, &out.Phone,
		&out.CommissionRate, &socialRaw, &bankRaw, &out.Status, &out.IsActive,
		&out.RejectionReason, &out.CreatedAt, &out.UpdatedAt, &out.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, affiliate.ErrNotFound
		}
		return nil, err
	}
	if vendorID != nil {
		out.VendorID = *vendorID
	}
	if len(socialRaw) > 0 {
		_ = json.Unmarshal(socialRaw, &out.SocialMedia)
	}
	if len(bankRaw) > 0 {
		_ = json.Unmarshal(bankRaw, &out.BankAccount)
	}
	return out, nil
}

func nullableID(id string) *string {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return &id
}

func (r *AffiliateRepository) Create(ctx context.Context, tenantID string, in affiliate.CreateInput) (*affiliate.Entity, error) {
	socialRaw, _ := json.Marshal(in.SocialMedia)
	bankRaw, _ := json.Marshal(in.BankAccount)
	q := `
INSERT INTO affiliates (
  tenant_id, program, vendor_id, first_name, last_name, email, phone,
  commission_rate, social_media, bank_account
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::jsonb,$10::jsonb)
RETURNING ` + affiliateColumns
	return scanAffiliate(r.pool.QueryRow(ctx, q,
		tenantID, in.Program, nullableID(in.VendorID), in.FirstName, in.LastName, in.Email, in.Phone,
		in.CommissionRate, socialRaw, bankRaw,
	))
}

func (r *AffiliateRepository) GetByID(ctx context.Context, tenantID, id string) (*affiliate.Entity, error) {
	q := `SELECT ` + affiliateColumns + ` FROM affiliates WHERE tenant_id = $1 AND id = $2`
	return scanAffiliate(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *AffiliateRepository) List(ctx context.Context, tenantID string, f affiliate.ListFilter) ([]affiliate.Entity, int64, error) {
	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	where := strings.Builder{}
	where.WriteString(" FROM affiliates WHERE tenant_id = $1")
	args := []any{tenantID}
	argPos := 2
	if strings.TrimSpace(f.Program) != "" {
		where.WriteString(" AND program = $")
		where.WriteString(strconv.Itoa(argPos))
		args = append(args, f.Program)
		argPos++
	}
	if strings.TrimSpace(f.Status) != "" {
		where.WriteString(" AND status = $")
		where.WriteString(strconv.Itoa(argPos))
		args = append(args, f.Status)
		argPos++
	}
	if strings.TrimSpace(f.Search) != "" {
		where.WriteString(" AND (first_name ILIKE $")
		where.WriteString(strconv.Itoa(argPos))
		where.WriteString(" OR last_name ILIKE $")
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
	query.WriteString("SELECT " + affiliateColumns)
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

	out := make([]affiliate.Entity, 0)
	for rows.Next() {
		item, err := scanAffiliate(rows)
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

func (r *AffiliateRepository) Update(ctx context.Context, tenantID, id string, in affiliate.UpdateInput) (*affiliate.Entity, error) {
	socialRaw, _ := json.Marshal(in.SocialMedia)
	bankRaw, _ := json.Marshal(in.BankAccount)
	q := `
UPDATE affiliates SET
  vendor_id = $3, first_name = $4, last_name = $5, email = $6, phone = $7,
  commission_rate = $8, social_media = $9::jsonb, bank_account = $10::jsonb, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + affiliateColumns
	return scanAffiliate(r.pool.QueryRow(ctx, q,
		tenantID, id, nullableID(in.VendorID), in.FirstName, in.LastName, in.Email, in.Phone,
		in.CommissionRate, socialRaw, bankRaw,
	))
}

func (r *AffiliateRepository) UpdateStatus(ctx context.Context, tenantID, id string, in affiliate.StatusUpdate) (*affiliate.Entity, error) {
	q := `
UPDATE affiliates SET
  status = $3, is_active = $4, rejection_reason = $5,
  approved_at = COALESCE($6, approved_at), updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + affiliateColumns
	return scanAffiliate(r.pool.QueryRow(ctx, q, tenantID, id, in.Status, in.IsActive, in.RejectionReason, in.ApprovedAt))
}
