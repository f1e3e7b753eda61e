package role

import (
	"context"
	"fmt"
	"strings"
)

// Catalog is the full permission set the API enforces, grouped by module.
var Catalog = []Permission{
	{Key: "vendors.view", Module: "vendors", Label: "View vendors"},
	{Key: "vendors.create", Module: "vendors", Label: "Create vendors"},
	{Key: "vendors.update", Module: "vendors", Label: "Update vendors"},
	{Key: "vendors.delete", Module: "vendors", Label: "Delete vendors"},
	{Key: "vendors.approve", Module: "vendors", Label: "Approve or reject vendors"},
	{Key: "affiliates.view", Module: "affiliates", Label: "View affiliates"},
	{Key: "affiliates.create", Module: "affiliates", Label: "Create affiliates"},
	{Key: "affiliates.update", Module: "affiliates", Label: "Update affiliates"},
	{Key: "affiliates.approve", Module: "affiliates", Label: "Approve or reject affiliates"},
	{Key: "products.view", Module: "products", Label: "View products"},
	{Key: "products.create", Module: "products", Label: "Create products"},
	{Key: "products.update", Module: "products", Label: "Update products"},
	{Key: "products.delete", Module: "products", Label: "Delete products"},
	{Key: "products.approve", Module: "products", Label: "Approve or reject products"},
	{Key: "categories.view", Module: "categories", Label: "View categories"},
	{Key: "categories.manage", Module: "categories", Label: "Manage categories"},
	{Key: "loans.view", Module: "loans", Label: "View loan partners"},
	{Key: "loans.manage", Module: "loans", Label: "Manage loan partners"},
	{Key: "roles.view", Module: "roles", Label: "View roles"},
	{Key: "roles.manage", Module: "roles", Label: "Manage roles"},
	{Key: "analytics.view", Module: "analytics", Label: "View dashboards"},
}

func ValidPermission(key string) bool {
	for _, p := range Catalog {
		if p.Key == key {
			return true
		}
	}
	return false
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenantID string, in Input) (*Role, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, tenantID, in)
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Role, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string) ([]Role, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *Service) Update(ctx context.Context, tenantID, id string, in Input) (*Role, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if existing.Slug == SlugAdmin {
		return nil, ErrAdminImmutable
	}
	return s.repo.Update(ctx, tenantID, id, in)
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	existing, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if existing.Slug == SlugAdmin {
		return ErrAdminImmutable
	}
	return s.repo.Delete(ctx, tenantID, id)
}

// PermissionsForSlug resolves a role's permission set for the middleware.
// Admin implicitly holds the full catalog.
func (s *Service) PermissionsForSlug(ctx context.Context, tenantID, slug string) ([]string, error) {
	if slug == SlugAdmin {
		out := make([]string, 0, len(Catalog))
		for _, p := range Catalog {
			out = append(out, p.Key)
		}
		return out, nil
	}
	r, err := s.repo.GetBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	return r.Permissions, nil
}

func validate(in *Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = strings.ToLower(strings.Join(strings.Fields(in.Name), "-"))
	}
	for _, key := range in.Permissions {
		if !ValidPermission(key) {
			return fmt.Errorf("%w: unknown permission %s", ErrInvalidInput, key)
		}
	}
	return nil
}
