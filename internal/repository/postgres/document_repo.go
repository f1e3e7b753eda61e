package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/document"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

const documentColumns = `id, tenant_id, owner_type, owner_id, document_type, file_name, file_size,
       mime_type, file_url, status, rejection_reason, submitted_at, verified_at`

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func scanDocument(row pgx.Row) (*document.Entity, error) {
	out := &document.Entity{}
	err := row.Scan(
		&out.ID, &out.TenantID, &out.OwnerType, &out.OwnerID, &out.DocumentType, &out.FileName, &out.FileSize,
		&out.MimeType, &out.FileURL, &out.Status, &out.RejectionReason, &out.SubmittedAt, &out.VerifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *DocumentRepository) Create(ctx context.Context, in document.CreateInput) (*document.Entity, error) {
	q := `
INSERT INTO verification_documents (
  tenant_id, owner_type, owner_id, document_type, file_name, file_size, mime_type, file_url
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + documentColumns
	return scanDocument(r.pool.QueryRow(ctx, q,
		in.TenantID, in.OwnerType, in.OwnerID, in.DocumentType, in.FileName, in.FileSize, in.MimeType, in.FileURL,
	))
}

func (r *DocumentRepository) GetByID(ctx context.Context, tenantID, id string) (*document.Entity, error) {
	q := `SELECT ` + documentColumns + ` FROM verification_documents WHERE tenant_id = $1 AND id = $2`
	return scanDocument(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, tenantID, ownerType, ownerID string) ([]document.Entity, error) {
	q := `SELECT ` + documentColumns + `
FROM verification_documents
WHERE tenant_id = $1 AND owner_type = $2 AND owner_id = $3
ORDER BY submitted_at ASC`
	rows, err := r.pool.Query(ctx, q, tenantID, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]document.Entity, 0)
	for rows.Next() {
		item, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, tenantID, id string, status workflow.Status, reason string, verifiedAt *time.Time) (*document.Entity, error) {
	q := `
UPDATE verification_documents SET
  status = $3, rejection_reason = $4, verified_at = $5
WHERE tenant_id = $1 AND id = $2
RETURNING ` + documentColumns
	return scanDocument(r.pool.QueryRow(ctx, q, tenantID, id, status, reason, verifiedAt))
}
