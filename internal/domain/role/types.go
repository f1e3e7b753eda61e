package role

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("role not found")
	ErrInvalidInput   = errors.New("invalid role input")
	ErrAdminImmutable = errors.New("admin role is immutable")
)

// Admin bypasses permission checks everywhere.
const SlugAdmin = "admin"

type Role struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"-"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Permission is a static catalog entry. The module grouping exists for the
// dashboard's accordion display.
type Permission struct {
	Key    string `json:"key"`
	Module string `json:"module"`
	Label  string `json:"label"`
}

type Input struct {
	Name        string
	Slug        string
	Permissions []string
}

type Repository interface {
	Create(ctx context.Context, tenantID string, in Input) (*Role, error)
	GetByID(ctx context.Context, tenantID, id string) (*Role, error)
	GetBySlug(ctx context.Context, tenantID, slug string) (*Role, error)
	List(ctx context.Context, tenantID string) ([]Role, error)
	Update(ctx context.Context, tenantID, id string, in Input) (*Role, error)
	Delete(ctx context.Context, tenantID, id string) error
}
