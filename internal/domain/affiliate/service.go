package affiliate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/markethub/admin-backend/internal/domain/audit"
	"github.com/markethub/admin-backend/internal/domain/document"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

const outboxTopicStatusChanged = "affiliate_status_changed"

type OutboxRepository interface {
	Enqueue(ctx context.Context, topic string, payload []byte) error
}

type Service struct {
	repo       Repository
	docRepo    document.Repository
	auditRepo  audit.Repository
	outboxRepo OutboxRepository
	now        func() time.Time
}

func NewService(repo Repository, docRepo document.Repository, auditRepo audit.Repository, outboxRepo OutboxRepository) *Service {
	return &Service{
		repo:       repo,
		docRepo:    docRepo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*Entity, error) {
	if !ValidProgram(in.Program) {
		return nil, ErrInvalidProgram
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Create(ctx, tenantID, in)
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Entity, error) {
	out, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListByOwner(ctx, tenantID, document.OwnerAffiliate, id)
	if err != nil {
		return nil, err
	}
	out.Documents = docs
	out.AllowedActions = workflow.AllowedActions(workflow.State{Status: out.Status, IsActive: out.IsActive})
	return out, nil
}

func (s *Service) List(ctx context.Context, tenantID string, f ListFilter) ([]Entity, int64, error) {
	if f.Program != "" && !ValidProgram(f.Program) {
		return nil, 0, ErrInvalidProgram
	}
	items, total, err := s.repo.List(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].AllowedActions = workflow.AllowedActions(workflow.State{Status: items[i].Status, IsActive: items[i].IsActive})
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, tenantID, id string, in UpdateInput) (*Entity, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Update(ctx, tenantID, id, in)
}

// ChangeStatus runs the shared approval workflow. Unlike vendors, affiliate
// approval does not wait on document review.
func (s *Service) ChangeStatus(ctx context.Context, actorID, tenantID, id string, target workflow.State, reason string) (*Entity, error) {
	cur, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	action, err := workflow.ActionFor(workflow.State{Status: cur.Status, IsActive: cur.IsActive}, target)
	if err != nil {
		return nil, err
	}

	next, err := workflow.Apply(workflow.State{Status: cur.Status, IsActive: cur.IsActive}, action, workflow.ApplyInput{Reason: reason})
	if err != nil {
		return nil, err
	}

	update := StatusUpdate{Status: next.Status, IsActive: next.IsActive}
	if action == workflow.ActionReject {
		update.RejectionReason = strings.TrimSpace(reason)
	}
	if action == workflow.ActionApprove {
		now := s.now()
		update.ApprovedAt = &now
	}

	updated, err := s.repo.UpdateStatus(ctx, tenantID, id, update)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]any{
		"affiliate_id": id,
		"program":      cur.Program,
		"action":       string(action),
		"status":       string(next.Status),
		"is_active":    next.IsActive,
		"reason":       update.RejectionReason,
	})
	_ = s.auditRepo.Log(ctx, audit.LogInput{
		TenantID:    tenantID,
		AdminUserID: actorID,
		Action:      "affiliate_" + string(action),
		TargetType:  cur.Program,
		TargetID:    id,
		Payload:     payload,
	})
	if err := s.outboxRepo.Enqueue(ctx, outboxTopicStatusChanged, payload); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) AddDocument(ctx context.Context, tenantID, id string, in document.CreateInput) (*document.Entity, error) {
	if _, err := s.repo.GetByID(ctx, tenantID, id); err != nil {
		return nil, err
	}
	in.TenantID = tenantID
	in.OwnerType = document.OwnerAffiliate
	in.OwnerID = id
	return s.docRepo.Create(ctx, in)
}

func (s *Service) ReviewDocument(ctx context.Context, actorID, tenantID, affiliateID, docID string, status workflow.Status, reason string) (*document.Entity, error) {
	if status != workflow.StatusApproved && status != workflow.StatusRejected {
		return nil, fmt.Errorf("%w: document review must approve or reject", workflow.ErrInvalidTransition)
	}
	if status == workflow.StatusRejected && strings.TrimSpace(reason) == "" {
		return nil, workflow.ErrReasonRequired
	}

	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerType != document.OwnerAffiliate || doc.OwnerID != affiliateID {
		return nil, ErrNotFound
	}

	now := s.now()
	updated, err := s.docRepo.UpdateStatus(ctx, tenantID, docID, status, strings.TrimSpace(reason), &now)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]any{"affiliate_id": affiliateID, "document_id": docID, "status": string(status)})
	_ = s.auditRepo.Log(ctx, audit.LogInput{
		TenantID:    tenantID,
		AdminUserID: actorID,
		Action:      "affiliate_document_reviewed",
		TargetType:  "verification_document",
		TargetID:    docID,
		Payload:     payload,
	})
	return updated, nil
}
