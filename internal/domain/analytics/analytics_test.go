package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/markethub/admin-backend/internal/domain/product"
)

type repoStub struct {
	vendors     StatusCounts
	byProgram   map[string]StatusCounts
	pendingDocs int64
	providers   int64
	offers      int64
	err         error
}

func (r *repoStub) VendorCounts(_ context.Context, _ string) (*StatusCounts, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := r.vendors
	return &out, nil
}

func (r *repoStub) AffiliateCounts(_ context.Context, _, program string) (*StatusCounts, error) {
	out := r.byProgram[program]
	return &out, nil
}

func (r *repoStub) PendingDocumentCount(_ context.Context, _ string) (int64, error) {
	return r.pendingDocs, nil
}

func (r *repoStub) LoanPartnerCounts(_ context.Context, _ string) (int64, int64, error) {
	return r.providers, r.offers, nil
}

type counterStub struct {
	counts product.TabCounts
}

func (c *counterStub) CountTabs(_ context.Context, _, _ string) (*product.TabCounts, error) {
	out := c.counts
	return &out, nil
}

func TestDashboardAggregates(t *testing.T) {
	repo := &repoStub{
		vendors: StatusCounts{Pending: 3, Approved: 10, Active: 8, Inactive: 2},
		byProgram: map[string]StatusCounts{
			"affiliate": {Pending: 1, Approved: 4},
			"winga":     {Pending: 2},
		},
		pendingDocs: 5,
		providers:   2,
		offers:      7,
	}
	counter := &counterStub{counts: product.TabCounts{Published: 12, Draft: 3, All: 20}}

	svc := NewService(repo, counter)
	out, err := svc.Dashboard(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if out.Vendors.Approved != 10 || out.Vendors.Inactive != 2 {
		t.Fatalf("unexpected vendor counts %+v", out.Vendors)
	}
	if out.Affiliates.Approved != 4 || out.Winga.Pending != 2 {
		t.Fatalf("expected per-program affiliate splits, got %+v / %+v", out.Affiliates, out.Winga)
	}
	if out.Products.Published != 12 || out.Products.All != 20 {
		t.Fatalf("unexpected product counts %+v", out.Products)
	}
	if out.PendingDocuments != 5 || out.LoanProviders != 2 || out.ActiveLoanOffers != 7 {
		t.Fatalf("unexpected totals %+v", out)
	}
}

func TestDashboardPropagatesErrors(t *testing.T) {
	repo := &repoStub{err: errors.New("db down")}
	svc := NewService(repo, &counterStub{})

	if _, err := svc.Dashboard(context.Background(), "t-1"); err == nil {
		t.Fatal("expected error")
	}
}
