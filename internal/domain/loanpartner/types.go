package loanpartner

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("loan partner not found")
	ErrInvalidInput = errors.New("invalid loan partner input")
)

// Provider is a loan partner integration record. Credentials are opaque
// strings owned by the partner integration, never interpreted here.
type Provider struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"-"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	LogoURL        string    `json:"logo_url,omitempty"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	IntegrationKey string    `json:"integration_key,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type LoanProduct struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"-"`
	ProviderID   string    `json:"provider_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	MinAmount    float64   `json:"min_amount"`
	MaxAmount    float64   `json:"max_amount"`
	InterestRate float64   `json:"interest_rate"`
	TermMonths   int       `json:"term_months"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProviderInput struct {
	Name           string
	Description    string
	LogoURL        string
	ContactEmail   string
	IntegrationKey string
}

type LoanProductInput struct {
	ProviderID   string
	Name         string
	Description  string
	MinAmount    float64
	MaxAmount    float64
	InterestRate float64
	TermMonths   int
}

type Repository interface {
	CreateProvider(ctx context.Context, tenantID string, in ProviderInput) (*Provider, error)
	GetProvider(ctx context.Context, tenantID, id string) (*Provider, error)
	ListProviders(ctx context.Context, tenantID string) ([]Provider, error)
	UpdateProvider(ctx context.Context, tenantID, id string, in ProviderInput) (*Provider, error)
	SetProviderActive(ctx context.Context, tenantID, id string, active bool) (*Provider, error)

	CreateLoanProduct(ctx context.Context, tenantID string, in LoanProductInput) (*LoanProduct, error)
	GetLoanProduct(ctx context.Context, tenantID, id string) (*LoanProduct, error)
	ListLoanProducts(ctx context.Context, tenantID, providerID string) ([]LoanProduct, error)
	UpdateLoanProduct(ctx context.Context, tenantID, id string, in LoanProductInput) (*LoanProduct, error)
	SetLoanProductActive(ctx context.Context, tenantID, id string, active bool) (*LoanProduct, error)
}
