package category

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("category not found")
	ErrInvalidInput = errors.New("invalid category input")
)

type Entity struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"-"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateInput struct {
	Name        string
	Slug        string
	Description string
	ParentID    string
}

type UpdateInput struct {
	Name        string
	Slug        string
	Description string
	ParentID    string
	IsActive    bool
}

type Repository interface {
	Create(ctx context.Context, tenantID string, in CreateInput) (*Entity, error)
	GetByID(ctx context.Context, tenantID, id string) (*Entity, error)
	List(ctx context.Context, tenantID string) ([]Entity, error)
	Update(ctx context.Context, tenantID, id string, in UpdateInput) (*Entity, error)
	Delete(ctx context.Context, tenantID, id string) error
	Exists(ctx context.Context, tenantID, id string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*Entity, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = Slugify(in.Name)
	}
	return s.repo.Create(ctx, tenantID, in)
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Entity, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string) ([]Entity, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *Service) Update(ctx context.Context, tenantID, id string, in UpdateInput) (*Entity, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = Slugify(in.Name)
	}
	return s.repo.Update(ctx, tenantID, id, in)
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *Service) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	return s.repo.Exists(ctx, tenantID, id)
}

func Slugify(name string) string {
	out := strings.ToLower(strings.TrimSpace(name))
	out = strings.Join(strings.Fields(out), "-")
	var b strings.Builder
	for _, r := range out {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
