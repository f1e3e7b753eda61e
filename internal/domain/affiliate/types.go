package affiliate

import (
	"context"
	"errors"
	"time"

	"github.com/markethub/admin-backend/internal/domain/document"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

var (
	ErrNotFound       = errors.New("affiliate not found")
	ErrInvalidInput   = errors.New("invalid affiliate input")
	ErrInvalidProgram = errors.New("invalid affiliate program")
)

// Program distinguishes the two parallel referral-partner flavors. They share
// one implementation; winga is not a separate module.
const (
	ProgramAffiliate = "affiliate"
	ProgramWinga     = "winga"
)

func ValidProgram(p string) bool {
	return p == ProgramAffiliate || p == ProgramWinga
}

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

type BankAccount struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	BranchCode    string `json:"branch_code,omitempty"`
}

type Entity struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"-"`
	Program         string          `json:"program"`
	VendorID        string          `json:"vendor_id,omitempty"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	CommissionRate  float64         `json:"commission_rate"`
	SocialMedia     SocialMedia     `json:"social_media"`
	BankAccount     BankAccount     `json:"bank_account"`
	Status          workflow.Status `json:"status"`
	IsActive        bool            `json:"is_active"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`

	AllowedActions []workflow.Action `json:"allowed_actions,omitempty"`
	Documents      []document.Entity `json:"documents,omitempty"`
}

type CreateInput struct {
	Program        string
	VendorID       string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CommissionRate float64
	SocialMedia    SocialMedia
	BankAccount    BankAccount
}

type UpdateInput struct {
	VendorID       string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CommissionRate float64
	SocialMedia    SocialMedia
	BankAccount    BankAccount
}

type ListFilter struct {
	Program string
	Status  string
	Search  string
	Page    int
	PerPage int
}

type StatusUpdate struct {
	Status          workflow.Status
	IsActive        bool
	RejectionReason string
	ApprovedAt      *time.Time
}

type Repository interface {
	Create(ctx context.Context, tenantID string, in CreateInput) (*Entity, error)
	GetByID(ctx context.Context, tenantID, id string) (*Entity, error)
	List(ctx context.Context, tenantID string, f ListFilter) ([]Entity, int64, error)
	Update(ctx context.Context, tenantID, id string, in UpdateInput) (*Entity, error)
	UpdateStatus(ctx context.Context, tenantID, id string, in StatusUpdate) (*Entity, error)
}
