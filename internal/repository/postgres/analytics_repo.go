package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/analytics"
)

type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) VendorCounts(ctx context.Context, tenantID string) (*analytics.StatusCounts, error) {
	q := `
SELECT
  COUNT(*) FILTER (WHERE verification_status = 'pending'),
  COUNT(*) FILTER (WHERE verification_status = 'approved'),
  COUNT(*) FILTER (WHERE verification_status = 'rejected'),
  COUNT(*) FILTER (WHERE verification_status = 'approved' AND is_active = TRUE),
  COUNT(*) FILTER (WHERE verification_status = 'approved' AND is_active = FALSE)
FROM vendors
WHERE tenant_id = $1 AND deleted_at IS NULL`
	out := &analytics.StatusCounts{}
	err := r.pool.QueryRow(ctx, q, tenantID).Scan(&out.Pending, &out.Approved, &out.Rejected, &out.Active, &out.Inactive)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsRepository) AffiliateCounts(ctx context.Context, tenantID, program string) (*analytics.StatusCounts, error) {
	q := `
SELECT
  COUNT(*) FILTER (WHERE status = 'pending'),
  COUNT(*) FILTER (WHERE status = 'approved'),
  COUNT(*) FILTER (WHERE status = 'rejected'),
  COUNT(*) FILTER (WHERE status = 'approved' AND is_active = TRUE),
  COUNT(*) FILTER (WHERE status = 'approved' AND is_active = FALSE)
FROM affiliates
WHERE tenant_id = $1 AND program = $2`
	out := &analytics.StatusCounts{}
	err := r.pool.QueryRow(ctx, q, tenantID, program).Scan(&out.Pending, &out.Approved, &out.Rejected, &out.Active, &out.Inactive)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsRepository) PendingDocumentCount(ctx context.Context, tenantID string) (int64, error) {
	q := `SELECT COUNT(*) FROM verification_documents WHERE tenant_id = $1 AND status = 'pending'`
	var n int64
	if err := r.pool.QueryRow(ctx, q, tenantID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AnalyticsRepository) LoanPartnerCounts(ctx context.Context, tenantID string) (int64, int64, error) {
	q := `
SELECT
  (SELECT COUNT(*) FROM loan_providers WHERE tenant_id = $1),
  (SELECT COUNT(*) FROM loan_products WHERE tenant_id = $1 AND is_active = TRUE)`
	var providers, offers int64
	if err := r.pool.QueryRow(ctx, q, tenantID).Scan(&providers, &offers); err != nil {
		return 0, 0, err
	}
	return providers, offers, nil
}
