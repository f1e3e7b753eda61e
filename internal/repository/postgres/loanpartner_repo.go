package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/loanpartner"
)

const providerColumns = `id, tenant_id, name, description, logo_url, contact_email, integration_key,
       is_active, created_at, updated_at`

const loanProductColumns = `id, tenant_id, provider_id, name, description, min_amount, max_amount,
       interest_rate, term_months, is_active, created_at, updated_at`

type LoanPartnerRepository struct {
	pool *pgxpool.Pool
}

func NewLoanPartnerRepository(pool *pgxpool.Pool) *LoanPartnerRepository {
	return &LoanPartnerRepository{pool: pool}
}

func scanProvider(row pgx.Row) (*loanpartner.Provider, error) {
	out := &loanpartner.Provider{}
	err := row.Scan(
		&out.ID, &out.TenantID, &out.Name, &out.Description, &out.LogoURL, &out.ContactEmail, &out.IntegrationKey,
		&out.IsActive, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loanpartner.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func scanLoanProduct(row pgx.Row) (*loanpartner.LoanProduct, error) {
	out := &loanpartner.LoanProduct{}
	err := row.Scan(
		&out.ID, &out.TenantID, &out.ProviderID, &out.Name, &out.Description, &out.MinAmount, &out.MaxAmount,
		&out.InterestRate, &out.TermMonths, &out.IsActive, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loanpartner.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *LoanPartnerRepository) CreateProvider(ctx context.Context, tenantID string, in loanpartner.ProviderInput) (*loanpartner.Provider, error) {
	q := `
INSERT INTO loan_providers (tenant_id, name, description, logo_url, contact_email, integration_key)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + providerColumns
	return scanProvider(r.pool.QueryRow(ctx, q, tenantID, in.Name, in.Description, in.LogoURL, in.ContactEmail, in.IntegrationKey))
}

func (r *LoanPartnerRepository) GetProvider(ctx context.Context, tenantID, id string) (*loanpartner.Provider, error) {
	q := `SELECT ` + providerColumns + ` FROM loan_providers WHERE tenant_id = $1 AND id = $2`
	return scanProvider(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *LoanPartnerRepository) ListProviders(ctx context.Context, tenantID string) ([]loanpartner.Provider, error) {
	q := `SELECT ` + providerColumns + ` FROM loan_providers WHERE tenant_id = $1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]loanpartner.Provider, 0)
	for rows.Next() {
		item, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *LoanPartnerRepository) UpdateProvider(ctx context.Context, tenantID, id string, in loanpartner.ProviderInput) (*loanpartner.Provider, error) {
	q := `
UPDATE loan_providers SET
  name = $3, description = $4, logo_url = $5, contact_email = $6, integration_key = $7, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + providerColumns
	return scanProvider(r.pool.QueryRow(ctx, q, tenantID, id, in.Name, in.Description, in.LogoURL, in.ContactEmail, in.IntegrationKey))
}

func (r *LoanPartnerRepository) SetProviderActive(ctx context.Context, tenantID, id string, active bool) (*loanpartner.Provider, error) {
	q := `
UPDATE loan_providers SET is_active = $3, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + providerColumns
	return scanProvider(r.pool.QueryRow(ctx, q, tenantID, id, active))
}

func (r *LoanPartnerRepository) CreateLoanProduct(ctx context.Context, tenantID string, in loanpartner.LoanProductInput) (*loanpartner.LoanProduct, error) {
	q := `
INSERT INTO loan_products (tenant_id, provider_id, name, description, min_amount, max_amount, interest_rate, term_months)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + loanProductColumns
	return scanLoanProduct(r.pool.QueryRow(ctx, q,
		tenantID, in.ProviderID, in.Name, in.Description, in.MinAmount, in.MaxAmount, in.InterestRate, in.TermMonths,
	))
}

func (r *LoanPartnerRepository) GetLoanProduct(ctx context.Context, tenantID, id string) (*loanpartner.LoanProduct, error) {
	q := `SELECT ` + loanProductColumns + ` FROM loan_products WHERE tenant_id = $1 AND id = $2`
	return scanLoanProduct(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *LoanPartnerRepository) ListLoanProducts(ctx context.Context, tenantID, providerID string) ([]loanpartner.LoanProduct, error) {
	q := `SELECT ` + loanProductColumns + ` FROM loan_products WHERE tenant_id = $1`
	args := []any{tenantID}
	if strings.TrimSpace(providerID) != "" {
		q += ` AND provider_id = $2`
		args = append(args, providerID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]loanpartner.LoanProduct, 0)
	for rows.Next() {
		item, err := scanLoanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *LoanPartnerRepository) UpdateLoanProduct(ctx context.Context, tenantID, id string, in loanpartner.LoanProductInput) (*loanpartner.LoanProduct, error) {
	q := `
UPDATE loan_products SET
  provider_id = $3, name = $4, description = $5, min_amount = $6, max_amount = $7,
  interest_rate = $8, term_months = $9, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + loanProductColumns
	return scanLoanProduct(r.pool.QueryRow(ctx, q,
		tenantID, id, in.ProviderID, in.Name, in.Description, in.MinAmount, in.MaxAmount, in.InterestRate, in.TermMonths,
	))
}

func (r *LoanPartnerRepository) SetLoanProductActive(ctx context.Context, tenantID, id string, active bool) (*loanpartner.LoanProduct, error) {
	q := `
UPDATE loan_products SET is_active = $3, updated_at = NOW()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + loanProductColumns
	return scanLoanProduct(r.pool.QueryRow(ctx, q, tenantID, id, active))
}
