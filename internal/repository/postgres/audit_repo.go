package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/markethub/admin-backend/internal/domain/audit"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, in audit.LogInput) error {
	q := `
INSERT INTO audit_log (tenant_id, admin_user_id, action, target_type, target_id, payload)
VALUES ($1,$2,$3,$4,$5,$6::jsonb)`
	payload := in.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	_, err := r.pool.Exec(ctx, q, in.TenantID, in.AdminUserID, in.Action, in.TargetType, in.TargetID, payload)
	return err
}
