package audit

import "context"

type LogInput struct {
	TenantID    string
	AdminUserID string
	Action      string
	TargetType  string
	TargetID    string
	Payload     []byte
}

type Repository interface {
	Log(ctx context.Context, in LogInput) error
}
