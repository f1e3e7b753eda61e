package product

import (
	"context"
	"errors"
	"time"

	"github.com/markethub/admin-backend/internal/domain/workflow"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid product input")
)

// Lifecycle status of a catalog entry, separate from the verification
// workflow. A product is publicly visible only when verification passed and
// the entry is active.
const (
	LifecycleDraft   = "draft"
	LifecycleActive  = "active"
	LifecyclePending = "pending"
)

type Variant struct {
	Type  string  `json:"type"`
	Value string  `json:"value"`
	Price float64 `json:"price"`
}

type Inventory struct {
	Quantity          int `json:"quantity"`
	LowStockThreshold int `json:"low_stock_threshold"`
}

type Entity struct {
	ID                 string            `json:"id"`
	TenantID           string            `json:"-"`
	VendorID           string            `json:"vendor_id"`
	Name               string            `json:"name"`
	SKU                string            `json:"sku"`
	Description        string            `json:"description,omitempty"`
	Price              float64           `json:"price"`
	Currency           string            `json:"currency"`
	Status             string            `json:"status"`
	VerificationStatus workflow.Status   `json:"verification_status"`
	IsActive           bool              `json:"is_active"`
	RejectionReason    string            `json:"rejection_reason,omitempty"`
	Inventory          Inventory         `json:"inventory"`
	CategoryIDs        []string          `json:"category_ids"`
	Variants           []Variant         `json:"variants"`
	AllowedActions     []workflow.Action `json:"allowed_actions,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type CreateInput struct {
	VendorID    string
	Name        string
	SKU         string
	Description string
	Price       float64
	Currency    string
	Inventory   Inventory
	CategoryIDs []string
	Variants    []Variant
}

type UpdateInput struct {
	Name        string
	SKU         string
	Description string
	Price       float64
	Currency    string
	Inventory   Inventory
	CategoryIDs []string
	Variants    []Variant
}

type ListFilter struct {
	VendorID string
	Tab      string
	Search   string
	Page     int
	PerPage  int
}

// Tabs the dashboard partitions the product table into.
const (
	TabAll       = "all"
	TabPublished = "published"
	TabDraft     = "draft"
	TabPending   = "pending"
	TabRejected  = "rejected"
)

type TabCounts struct {
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
	Pending   int64 `json:"pending"`
	Rejected  int64 `json:"rejected"`
	All       int64 `json:"all"`
}

type StatusUpdate struct {
	Status             string
	VerificationStatus workflow.Status
	IsActive           bool
	RejectionReason    string
}

type Repository interface {
	Create(ctx context.Context, tenantID string, in CreateInput) (*Entity, error)
	GetByID(ctx context.Context, tenantID, id string) (*Entity, error)
	List(ctx context.Context, tenantID string, f ListFilter) ([]Entity, int64, error)
	Update(ctx context.Context, tenantID, id string, in UpdateInput) (*Entity, error)
	UpdateStatus(ctx context.Context, tenantID, id string, in StatusUpdate) (*Entity, error)
	SoftDelete(ctx context.Context, tenantID, id string) error
	CountTabs(ctx context.Context, tenantID, vendorID string) (*TabCounts, error)
	ExistsSKU(ctx context.Context, tenantID, sku string) (bool, error)
}

type CategoryChecker interface {
	Exists(ctx context.Context, tenantID, categoryID string) (bool, error)
}
