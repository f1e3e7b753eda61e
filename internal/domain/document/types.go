package document

import (
	"context"
	"errors"
	"time"

	"github.com/markethub/admin-backend/internal/domain/workflow"
)

var ErrNotFound = errors.New("document not found")

// Owner types a verification document can belong to.
const (
	OwnerVendor    = "vendor"
	OwnerAffiliate = "affiliate"
)

type Entity struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"-"`
	OwnerType       string          `json:"owner_type"`
	OwnerID         string          `json:"owner_id"`
	DocumentType    string          `json:"document_type"`
	FileName        string          `json:"file_name"`
	FileSize        int64           `json:"file_size"`
	MimeType        string          `json:"mime_type"`
	FileURL         string          `json:"file_url"`
	Status          workflow.Status `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
}

type CreateInput struct {
	TenantID     string
	OwnerType    string
	OwnerID      string
	DocumentType string
	FileName     string
	FileSize     int64
	MimeType     string
	FileURL      string
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Entity, error)
	GetByID(ctx context.Context, tenantID, id string) (*Entity, error)
	ListByOwner(ctx context.Context, tenantID, ownerType, ownerID string) ([]Entity, error)
	UpdateStatus(ctx context.Context, tenantID, id string, status workflow.Status, reason string, verifiedAt *time.Time) (*Entity, error)
}

// AllApproved reports whether every document passed review. An owner with no
// documents at all has nothing approved.
func AllApproved(docs []Entity) bool {
	if len(docs) == 0 {
		return false
	}
	for _, d := range docs {
		if d.Status != workflow.StatusApproved {
			return false
		}
	}
	return true
}
