package loanpartner

import (
	"context"
	"fmt"
	"strings"

	"github.com/markethub/admin-backend/internal/domain/audit"
)

type Service struct {
	repo      Repository
	auditRepo audit.Repository
}

func NewService(repo Repository, auditRepo audit.Repository) *Service {
	return &Service{repo: repo, auditRepo: auditRepo}
}

func (s *Service) CreateProvider(ctx context.Context, tenantID string, in ProviderInput) (*Provider, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.CreateProvider(ctx, tenantID, in)
}

func (s *Service) GetProvider(ctx context.Context, tenantID, id string) (*Provider, error) {
	return s.repo.GetProvider(ctx, tenantID, id)
}

func (s *Service) ListProviders(ctx context.Context, tenantID string) ([]Provider, error) {
	return s.repo.ListProviders(ctx, tenantID)
}

func (s *Service) UpdateProvider(ctx context.Context, tenantID, id string, in ProviderInput) (*Provider, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.UpdateProvider(ctx, tenantID, id, in)
}

func (s *Service) SetProviderActive(ctx context.Context, actorID, tenantID, id string, active bool) (*Provider, error) {
	updated, err := s.repo.SetProviderActive(ctx, tenantID, id, active)
	if err != nil {
		return nil, err
	}
	action := "loan_provider_deactivated"
	if active {
		action = "loan_provider_activated"
	}
	_ = s.auditRepo.Log(ctx, audit.LogInput{
		TenantID:    tenantID,
		AdminUserID: actorID,
		Action:      action,
		TargetType:  "loan_provider",
		TargetID:    id,
	})
	return updated, nil
}

func (s *Service) CreateLoanProduct(ctx context.Context, tenantID string, in LoanProductInput) (*LoanProduct, error) {
	if err := validateLoanProduct(in); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProvider(ctx, tenantID, in.ProviderID); err != nil {
		return nil, err
	}
	return s.repo.CreateLoanProduct(ctx, tenantID, in)
}

func (s *Service) GetLoanProduct(ctx context.Context, tenantID, id string) (*LoanProduct, error) {
	return s.repo.GetLoanProduct(ctx, tenantID, id)
}

func (s *Service) ListLoanProducts(ctx context.Context, tenantID, providerID string) ([]LoanProduct, error) {
	return s.repo.ListLoanProducts(ctx, tenantID, providerID)
}

func (s *Service) UpdateLoanProduct(ctx context.Context, tenantID, id string, in LoanProductInput) (*LoanProduct, error) {
	if err := validateLoanProduct(in); err != nil {
		return nil, err
	}
	return s.repo.UpdateLoanProduct(ctx, tenantID, id, in)
}

func (s *Service) SetLoanProductActive(ctx context.Context, actorID, tenantID, id string, active bool) (*LoanProduct, error) {
	updated, err := s.repo.SetLoanProductActive(ctx, tenantID, id, active)
	if err != nil {
		return nil, err
	}
	action := "loan_product_deactivated"
	if active {
		action = "loan_product_activated"
	}
	_ = s.auditRepo.Log(ctx, audit.LogInput{
		TenantID:    tenantID,
		AdminUserID: actorID,
		Action:      action,
		TargetType:  "loan_product",
		TargetID:    id,
	})
	return updated, nil
}

func validateLoanProduct(in LoanProductInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.ProviderID) == "" {
		return ErrInvalidInput
	}
	if in.MinAmount < 0 || in.MaxAmount < in.MinAmount {
		return fmt.Errorf("%w: amount range", ErrInvalidInput)
	}
	if in.InterestRate < 0 || in.TermMonths <= 0 {
		return fmt.Errorf("%w: loan terms", ErrInvalidInput)
	}
	return nil
}
