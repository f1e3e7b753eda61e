package affiliate

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/markethub/admin-backend/internal/domain/audit"
	"github.com/markethub/admin-backend/internal/domain/document"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

type affiliateRepoMock struct {
	items  map[string]*Entity
	nextID int
}

func (m *affiliateRepoMock) Create(_ context.Context, tenantID string, in CreateInput) (*Entity, error) {
	m.nextID++
	e := &Entity{
		ID:        "a-" + strconv.Itoa(m.nextID),
		TenantID:  tenantID,
		Program:   in.Program,
		VendorID:  in.VendorID,
		FirstName: in.FirstName,
		Email:     in.Email,
		Status:    workflow.StatusPending,
	}
	m.items[e.ID] = e
	return e, nil
}

func (m *affiliateRepoMock) GetByID(_ context.Context, tenantID, id string) (*Entity, error) {
	if e, ok := m.items[id]; ok && e.TenantID == tenantID {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *affiliateRepoMock) List(_ context.Context, tenantID string, f ListFilter) ([]Entity, int64, error) {
	out := []Entity{}
	for _, e := range m.items {
		if e.TenantID != tenantID {
			continue
		}
		if f.Program != "" && e.Program != f.Program {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (m *affiliateRepoMock) Update(_ context.Context, tenantID, id string, in UpdateInput) (*Entity, error) {
	e, ok := m.items[id]
	if !ok || e.TenantID != tenantID {
		return nil, ErrNotFound
	}
	e.FirstName = in.FirstName
	e.Email = in.Email
	cp := *e
	return &cp, nil
}

func (m *affiliateRepoMock) UpdateStatus(_ context.Context, tenantID, id string, in StatusUpdate) (*Entity, error) {
	e, ok := m.items[id]
	if !ok || e.TenantID != tenantID {
		return nil, ErrNotFound
	}
	e.Status = in.Status
	e.IsActive = in.IsActive
	e.RejectionReason = in.RejectionReason
	e.ApprovedAt = in.ApprovedAt
	cp := *e
	return &cp, nil
}

type affDocRepoMock struct {
	items map[string]*document.Entity
}

func (m *affDocRepoMock) Create(_ context.Context, in document.CreateInput) (*document.Entity, error) {
	d := &document.Entity{ID: "d-1", TenantID: in.TenantID, OwnerType: in.OwnerType, OwnerID: in.OwnerID, Status: workflow.StatusPending}
	m.items[d.ID] = d
	return d, nil
}

func (m *affDocRepoMock) GetByID(_ context.Context, tenantID, id string) (*document.Entity, error) {
	if d, ok := m.items[id]; ok && d.TenantID == tenantID {
		cp := *d
		return &cp, nil
	}
	return nil, errors.New("document not found")
}

func (m *affDocRepoMock) ListByOwner(_ context.Context, tenantID, ownerType, ownerID string) ([]document.Entity, error) {
	out := []document.Entity{}
	for _, d := range m.items {
		if d.TenantID == tenantID && d.OwnerType == ownerType && d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *affDocRepoMock) UpdateStatus(_ context.Context, tenantID, id string, status workflow.Status, reason string, verifiedAt *time.Time) (*document.Entity, error) {
	d, ok := m.items[id]
	if !ok || d.TenantID != tenantID {
		return nil, errors.New("document not found")
	}
	d.Status = status
	d.RejectionReason = reason
	cp := *d
	return &cp, nil
}

type affAuditMock struct{ logs []audit.LogInput }

func (m *affAuditMock) Log(_ context.Context, in audit.LogInput) error {
	m.logs = append(m.logs, in)
	return nil
}

type affOutboxMock struct{ topics []string }

func (m *affOutboxMock) Enqueue(_ context.Context, topic string, _ []byte) error {
	m.topics = append(m.topics, topic)
	return nil
}

func newAffiliateService() (*Service, *affiliateRepoMock) {
	repo := &affiliateRepoMock{items: map[string]*Entity{}}
	svc := NewService(repo, &affDocRepoMock{items: map[string]*document.Entity{}}, &affAuditMock{}, &affOutboxMock{})
	return svc, repo
}

func TestCreateValidatesProgram(t *testing.T) {
	svc, _ := newAffiliateService()

	_, err := svc.Create(context.Background(), "t-1", CreateInput{Program: "referrer", FirstName: "Asha", Email: "a@example.com"})
	if err == nil {
		t.Fatal("expected unknown program to be rejected")
	}

	for _, program := range []string{ProgramAffiliate, ProgramWinga} {
		created, err := svc.Create(context.Background(), "t-1", CreateInput{Program: program, FirstName: "Asha", Email: "a@example.com"})
		if err != nil {
			t.Fatalf("create %s: %v", program, err)
		}
		if created.Status != workflow.StatusPending {
			t.Fatalf("new %s must start pending, got %s", program, created.Status)
		}
	}
}

func TestApproveWithoutDocuments(t *testing.T) {
	// Affiliates have no document gate; approval from pending always works.
	svc, _ := newAffiliateService()
	created, err := svc.Create(context.Background(), "t-1", CreateInput{Program: ProgramWinga, FirstName: "Asha", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.ChangeStatus(context.Background(), "admin-1", "t-1", created.ID, workflow.State{Status: workflow.StatusApproved, IsActive: true}, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != workflow.StatusApproved || !updated.IsActive || updated.ApprovedAt == nil {
		t.Fatalf("expected approved+active with timestamp, got %+v", updated)
	}
}

func TestPendingAffiliateOffersOnlyApproveReject(t *testing.T) {
	svc, _ := newAffiliateService()
	created, err := svc.Create(context.Background(), "t-1", CreateInput{Program: ProgramAffiliate, FirstName: "Asha", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Activate/deactivate must not be legal while pending.
	_, err = svc.ChangeStatus(context.Background(), "admin-1", "t-1", created.ID, workflow.State{Status: workflow.StatusApproved, IsActive: false}, "")
	if err != nil {
		// approve lands active; requesting approved+inactive is still an approve
		t.Fatalf("approve to inactive target: %v", err)
	}

	menu := workflow.AllowedActions(workflow.State{Status: workflow.StatusPending})
	if len(menu) != 2 || menu[0] != workflow.ActionApprove || menu[1] != workflow.ActionReject {
		t.Fatalf("pending menu must be approve/reject, got %v", menu)
	}
}

func TestListFiltersByProgram(t *testing.T) {
	svc, _ := newAffiliateService()
	ctx := context.Background()
	_, _ = svc.Create(ctx, "t-1", CreateInput{Program: ProgramAffiliate, FirstName: "A", Email: "a@example.com"})
	_, _ = svc.Create(ctx, "t-1", CreateInput{Program: ProgramWinga, FirstName: "W", Email: "w@example.com"})

	items, total, err := svc.List(ctx, "t-1", ListFilter{Program: ProgramWinga})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Program != ProgramWinga {
		t.Fatalf("expected only winga rows, got %v", items)
	}

	if _, _, err := svc.List(ctx, "t-1", ListFilter{Program: "bogus"}); err == nil {
		t.Fatal("expected invalid program filter to fail")
	}
}
