package analytics

import (
	"context"

	"github.com/markethub/admin-backend/internal/domain/product"
)

// StatusCounts is the per-status breakdown shown on the dashboards.
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type DashboardSummary struct {
	Vendors          StatusCounts      `json:"vendors"`
	Affiliates       StatusCounts      `json:"affiliates"`
	Winga            StatusCounts      `json:"winga"`
	Products         product.TabCounts `json:"products"`
	PendingDocuments int64             `json:"pending_documents"`
	LoanProviders    int64             `json:"loan_providers"`
	ActiveLoanOffers int64             `json:"active_loan_offers"`
}

type Repository interface {
	VendorCounts(ctx context.Context, tenantID string) (*StatusCounts, error)
	AffiliateCounts(ctx context.Context, tenantID, program string) (*StatusCounts, error)
	PendingDocumentCount(ctx context.Context, tenantID string) (int64, error)
	LoanPartnerCounts(ctx context.Context, tenantID string) (providers int64, activeOffers int64, err error)
}

type ProductCounter interface {
	CountTabs(ctx context.Context, tenantID, vendorID string) (*product.TabCounts, error)
}

type Service struct {
	repo     Repository
	products ProductCounter
}

func NewService(repo Repository, products ProductCounter) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Dashboard(ctx context.Context, tenantID string) (*DashboardSummary, error) {
	out := &DashboardSummary{}

	vendors, err := s.repo.VendorCounts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out.Vendors = *vendors

	affiliates, err := s.repo.AffiliateCounts(ctx, tenantID, "affiliate")
	if err != nil {
		return nil, err
	}
	out.Affiliates = *affiliates

	winga, err := s.repo.AffiliateCounts(ctx, tenantID, "winga")
	if err != nil {
		return nil, err
	}
	out.Winga = *winga

	products, err := s.products.CountTabs(ctx, tenantID, "")
	if err != nil {
		return nil, err
	}
	out.Products = *products

	out.PendingDocuments, err = s.repo.PendingDocumentCount(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out.LoanProviders, out.ActiveLoanOffers, err = s.repo.LoanPartnerCounts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return out, nil
}
