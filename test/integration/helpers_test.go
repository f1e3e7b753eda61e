package integration

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/auth"
	"github.com/markethub/admin-backend/internal/config"
	"github.com/markethub/admin-backend/internal/db"
	affiliatedomain "github.com/markethub/admin-backend/internal/domain/affiliate"
	"github.com/markethub/admin-backend/internal/domain/audit"
	categorydomain "github.com/markethub/admin-backend/internal/domain/category"
	"github.com/markethub/admin-backend/internal/domain/document"
	productdomain "github.com/markethub/admin-backend/internal/domain/product"
	roledomain "github.com/markethub/admin-backend/internal/domain/role"
	vendordomain "github.com/markethub/admin-backend/internal/domain/vendor"
	"github.com/markethub/admin-backend/internal/domain/workflow"
	"github.com/markethub/admin-backend/internal/http/handlers"
	"github.com/markethub/admin-backend/internal/server"
	"github.com/markethub/admin-backend/internal/storage"
)

const (
	testTenant   = "tenant-1"
	testPassword = "correct horse battery staple"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(_ context.Context) error { return p.err }

// fakeAuthRepo keeps admin users and sessions in memory.
type fakeAuthRepo struct {
	users     map[string]*db.User
	sessions  map[string]*db.Session
	sessionID int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[string]*db.User{}, sessions: map[string]*db.Session{}}
}

func (r *fakeAuthRepo) addUser(id, email, roleSlug string) {
	hash, _ := auth.HashPassword(testPassword)
	r.users[id] = &db.User{
		ID:           id,
		TenantID:     testTenant,
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test Admin",
		RoleSlug:     roleSlug,
		IsActive:     true,
	}
}

func (r *fakeAuthRepo) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeAuthRepo) GetUserByID(_ context.Context, userID string) (*db.User, error) {
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (r *fakeAuthRepo) CreateSession(_ context.Context, userID, refreshHash, userAgent, ipAddress string, expiresAt time.Time) (*db.Session, error) {
	r.sessionID++
	s := &db.Session{
		ID:               "sess-" + strconv.Itoa(r.sessionID),
		UserID:           userID,
		RefreshTokenHash: refreshHash,
		UserAgent:        userAgent,
		IPAddress:        ipAddress,
		ExpiresAt:        expiresAt,
	}
	r.sessions[s.ID] = s
	return s, nil
}

func (r *fakeAuthRepo) GetSessionByID(_ context.Context, sessionID string) (*db.Session, error) {
	if s, ok := r.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, errors.New("session not found")
}

func (r *fakeAuthRepo) RevokeSession(_ context.Context, sessionID string) error {
	if s, ok := r.sessions[sessionID]; ok {
		now := time.Now().UTC()
		s.RevokedAt = &now
	}
	return nil
}

func (r *fakeAuthRepo) UpdateSessionRefreshHash(_ context.Context, sessionID, refreshHash string) error {
	if s, ok := r.sessions[sessionID]; ok {
		s.RefreshTokenHash = refreshHash
	}
	return nil
}

// fakeVendorRepo is an in-memory vendor.Repository.
type fakeVendorRepo struct {
	items  map[string]*vendordomain.Entity
	nextID int
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{items: map[string]*vendordomain.Entity{}}
}

func (r *fakeVendorRepo) Create(_ context.Context, tenantID string, in vendordomain.CreateInput) (*vendordomain.Entity, error) {
	r.nextID++
	v := &vendordomain.Entity{
		ID:                 "v-" + strconv.Itoa(r.nextID),
		TenantID:           tenantID,
		BusinessName:       in.BusinessName,
		DisplayName:        in.DisplayName,
		TaxID:              in.TaxID,
		Email:              in.Email,
		Phone:              in.Phone,
		Address:            in.Address,
		BankAccount:        in.BankAccount,
		CommissionRate:     in.CommissionRate,
		VerificationStatus: workflow.StatusPending,
		CreatedAt:          time.Now().UTC(),
		UpdatedAt:          time.Now().UTC(),
	}
	r.items[v.ID] = v
	cp := *v
	return &cp, nil
}

func (r *fakeVendorRepo) GetByID(_ context.Context, tenantID, id string) (*vendordomain.Entity, error) {
	v, ok := r.items[id]
	if !ok || v.TenantID != tenantID {
		return nil, vendordomain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVendorRepo) List(_ context.Context, tenantID string, f vendordomain.ListFilter) ([]vendordomain.Entity, int64, error) {
	out := []vendordomain.Entity{}
	for _, v := range r.items {
		if v.TenantID != tenantID {
			continue
		}
		if f.Status != "" && string(v.VerificationStatus) != f.Status {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVendorRepo) Update(_ context.Context, tenantID, id string, in vendordomain.UpdateInput) (*vendordomain.Entity, error) {
	v, ok := r.items[id]
	if !ok || v.TenantID != tenantID {
		return nil, vendordomain.ErrNotFound
	}
	v.BusinessName = in.BusinessName
	v.DisplayName = in.DisplayName
	v.Email = in.Email
	v.Phone = in.Phone
	v.Address = in.Address
	v.BankAccount = in.BankAccount
	v.CommissionRate = in.CommissionRate
	cp := *v
	return &cp, nil
}

func (r *fakeVendorRepo) UpdateStatus(_ context.Context, tenantID, id string, in vendordomain.StatusUpdate) (*vendordomain.Entity, error) {
	v, ok := r.items[id]
	if !ok || v.TenantID != tenantID {
		return nil, vendordomain.ErrNotFound
	}
	v.VerificationStatus = in.Status
	v.IsActive = in.IsActive
	v.RejectionReason = in.RejectionReason
	if in.ApprovedAt != nil {
		v.ApprovedAt = in.ApprovedAt
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVendorRepo) SoftDelete(_ context.Context, tenantID, id string) error {
	v, ok := r.items[id]
	if !ok || v.TenantID != tenantID {
		return vendordomain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeDocRepo is an in-memory document.Repository.
type fakeDocRepo struct {
	items  map[string]*document.Entity
	nextID int
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{items: map[string]*document.Entity{}}
}

func (r *fakeDocRepo) Create(_ context.Context, in document.CreateInput) (*document.Entity, error) {
	r.nextID++
	d := &document.Entity{
		ID:           "d-" + strconv.Itoa(r.nextID),
		TenantID:     in.TenantID,
		OwnerType:    in.OwnerType,
		OwnerID:      in.OwnerID,
		DocumentType: in.DocumentType,
		FileName:     in.FileName,
		FileSize:     in.FileSize,
		MimeType:     in.MimeType,
		FileURL:      in.FileURL,
		Status:       workflow.StatusPending,
		SubmittedAt:  time.Now().UTC(),
	}
	r.items[d.ID] = d
	cp := *d
	return &cp, nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, tenantID, id string) (*document.Entity, error) {
	d, ok := r.items[id]
	if !ok || d.TenantID != tenantID {
		return nil, document.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocRepo) ListByOwner(_ context.Context, tenantID, ownerType, ownerID string) ([]document.Entity, error) {
	out := []document.Entity{}
	for _, d := range r.items {
		if d.TenantID == tenantID && d.OwnerType == ownerType && d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) UpdateStatus(_ context.Context, tenantID, id string, status workflow.Status, reason string, verifiedAt *time.Time) (*document.Entity, error) {
	d, ok := r.items[id]
	if !ok || d.TenantID != tenantID {
		return nil, document.ErrNotFound
	}
	d.Status = status
	d.RejectionReason = reason
	d.VerifiedAt = verifiedAt
	cp := *d
	return &cp, nil
}

type fakeAuditRepo struct {
	entries []audit.LogInput
}

func (r *fakeAuditRepo) Log(_ context.Context, in audit.LogInput) error {
	r.entries = append(r.entries, in)
	return nil
}

type fakeOutbox struct {
	topics []string
}

func (r *fakeOutbox) Enqueue(_ context.Context, topic string, _ []byte) error {
	r.topics = append(r.topics, topic)
	return nil
}

// fakeProductRepo is an in-memory product.Repository.
type fakeProductRepo struct {
	items  map[string]*productdomain.Entity
	nextID int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: map[string]*productdomain.Entity{}}
}

func (r *fakeProductRepo) Create(_ context.Context, tenantID string, in productdomain.CreateInput) (*productdomain.Entity, error) {
	r.nextID++
	p := &productdomain.Entity{
		ID:                 "p-" + strconv.Itoa(r.nextID),
		TenantID:           tenantID,
		VendorID:           in.VendorID,
		Name:               in.Name,
		SKU:                in.SKU,
		Description:        in.Description,
		Price:              in.Price,
		Currency:           in.Currency,
		Status:             productdomain.LifecycleDraft,
		VerificationStatus: workflow.StatusPending,
		Inventory:          in.Inventory,
		CategoryIDs:        in.CategoryIDs,
		Variants:           in.Variants,
	}
	r.items[p.ID] = p
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, tenantID, id string) (*productdomain.Entity, error) {
	p, ok := r.items[id]
	if !ok || p.TenantID != tenantID {
		return nil, productdomain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(_ context.Context, tenantID string, _ productdomain.ListFilter) ([]productdomain.Entity, int64, error) {
	out := []productdomain.Entity{}
	for _, p := range r.items {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, tenantID, id string, in productdomain.UpdateInput) (*productdomain.Entity, error) {
	p, ok := r.items[id]
	if !ok || p.TenantID != tenantID {
		return nil, productdomain.ErrNotFound
	}
	p.Name = in.Name
	p.SKU = in.SKU
	p.Price = in.Price
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) UpdateStatus(_ context.Context, tenantID, id string, in productdomain.StatusUpdate) (*productdomain.Entity, error) {
	p, ok := r.items[id]
	if !ok || p.TenantID != tenantID {
		return nil, productdomain.ErrNotFound
	}
	p.Status = in.Status
	p.VerificationStatus = in.VerificationStatus
	p.IsActive = in.IsActive
	p.RejectionReason = in.RejectionReason
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, tenantID, id string) error {
	p, ok := r.items[id]
	if !ok || p.TenantID != tenantID {
		return productdomain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeProductRepo) CountTabs(_ context.Context, tenantID, _ string) (*productdomain.TabCounts, error) {
	out := &productdomain.TabCounts{}
	for _, p := range r.items {
		if p.TenantID != tenantID {
			continue
		}
		out.All++
		switch {
		case p.VerificationStatus == workflow.StatusApproved && p.IsActive:
			out.Published++
		case p.Status == productdomain.LifecycleDraft:
			out.Draft++
		case p.VerificationStatus == workflow.StatusRejected:
			out.Rejected++
		default:
			out.Pending++
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ExistsSKU(_ context.Context, tenantID, sku string) (bool, error) {
	for _, p := range r.items {
		if p.TenantID == tenantID && p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

// fakeAffiliateRepo is an in-memory affiliate.Repository.
type fakeAffiliateRepo struct {
	items  map[string]*affiliatedomain.Entity
	nextID int
}

func newFakeAffiliateRepo() *fakeAffiliateRepo {
	return &fakeAffiliateRepo{items: map[string]*affiliatedomain.Entity{}}
}

func (r *fakeAffiliateRepo) Create(_ context.Context, tenantID string, in affiliatedomain.CreateInput) (*affiliatedomain.Entity, error) {
	r.nextID++
	a := &affiliatedomain.Entity{
		ID:             "a-" + strconv.Itoa(r.nextID),
		TenantID:       tenantID,
		Program:        in.Program,
		VendorID:       in.VendorID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		CommissionRate: in.CommissionRate,
		SocialMedia:    in.SocialMedia,
		BankAccount:    in.BankAccount,
		Status:         workflow.StatusPending,
	}
	r.items[a.ID] = a
	cp := *a
	return &cp, nil
}

func (r *fakeAffiliateRepo) GetByID(_ context.Context, tenantID, id string) (*affiliatedomain.Entity, error) {
	a, ok := r.items[id]
	if !ok || a.TenantID != tenantID {
		return nil, affiliatedomain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAffiliateRepo) List(_ context.Context, tenantID string, _ affiliatedomain.ListFilter) ([]affiliatedomain.Entity, int64, error) {
	out := []affiliatedomain.Entity{}
	for _, a := range r.items {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAffiliateRepo) Update(_ context.Context, tenantID, id string, in affiliatedomain.UpdateInput) (*affiliatedomain.Entity, error) {
	a, ok := r.items[id]
	if !ok || a.TenantID != tenantID {
		return nil, affiliatedomain.ErrNotFound
	}
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.Email = in.Email
	a.Phone = in.Phone
	a.CommissionRate = in.CommissionRate
	cp := *a
	return &cp, nil
}

func (r *fakeAffiliateRepo) UpdateStatus(_ context.Context, tenantID, id string, in affiliatedomain.StatusUpdate) (*affiliatedomain.Entity, error) {
	a, ok := r.items[id]
	if !ok || a.TenantID != tenantID {
		return nil, affiliatedomain.ErrNotFound
	}
	a.Status = in.Status
	a.IsActive = in.IsActive
	a.RejectionReason = in.RejectionReason
	if in.ApprovedAt != nil {
		a.ApprovedAt = in.ApprovedAt
	}
	cp := *a
	return &cp, nil
}

// fakeCategoryRepo is an in-memory category.Repository; products reuse it as
// their existence checker.
type fakeCategoryRepo struct {
	items  map[string]*categorydomain.Entity
	nextID int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: map[string]*categorydomain.Entity{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, tenantID string, in categorydomain.CreateInput) (*categorydomain.Entity, error) {
	r.nextID++
	c := &categorydomain.Entity{
		ID:          "c-" + strconv.Itoa(r.nextID),
		TenantID:    tenantID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsActive:    true,
	}
	r.items[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, tenantID, id string) (*categorydomain.Entity, error) {
	c, ok := r.items[id]
	if !ok || c.TenantID != tenantID {
		return nil, categorydomain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(_ context.Context, tenantID string) ([]categorydomain.Entity, error) {
	out := []categorydomain.Entity{}
	for _, c := range r.items {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, tenantID, id string, in categorydomain.UpdateInput) (*categorydomain.Entity, error) {
	c, ok := r.items[id]
	if !ok || c.TenantID != tenantID {
		return nil, categorydomain.ErrNotFound
	}
	c.Name = in.Name
	c.Slug = in.Slug
	c.Description = in.Description
	c.ParentID = in.ParentID
	c.IsActive = in.IsActive
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, tenantID, id string) error {
	c, ok := r.items[id]
	if !ok || c.TenantID != tenantID {
		return categorydomain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCategoryRepo) Exists(_ context.Context, tenantID, id string) (bool, error) {
	c, ok := r.items[id]
	return ok && c.TenantID == tenantID, nil
}

// fakeRoleRepo is an in-memory role.Repository.
type fakeRoleRepo struct {
	items  map[string]*roledomain.Role
	nextID int
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{items: map[string]*roledomain.Role{}}
}

func (r *fakeRoleRepo) Create(_ context.Context, tenantID string, in roledomain.Input) (*roledomain.Role, error) {
	r.nextID++
	role := &roledomain.Role{ID: "r-" + strconv.Itoa(r.nextID), TenantID: tenantID, Name: in.Name, Slug: in.Slug, Permissions: in.Permissions}
	r.items[role.ID] = role
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, tenantID, id string) (*roledomain.Role, error) {
	role, ok := r.items[id]
	if !ok || role.TenantID != tenantID {
		return nil, roledomain.ErrNotFound
	}
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) GetBySlug(_ context.Context, tenantID, slug string) (*roledomain.Role, error) {
	for _, role := range r.items {
		if role.TenantID == tenantID && role.Slug == slug {
			cp := *role
			return &cp, nil
		}
	}
	return nil, roledomain.ErrNotFound
}

func (r *fakeRoleRepo) List(_ context.Context, tenantID string) ([]roledomain.Role, error) {
	out := []roledomain.Role{}
	for _, role := range r.items {
		if role.TenantID == tenantID {
			out = append(out, *role)
		}
	}
	return out, nil
}

func (r *fakeRoleRepo) Update(_ context.Context, tenantID, id string, in roledomain.Input) (*roledomain.Role, error) {
	role, ok := r.items[id]
	if !ok || role.TenantID != tenantID {
		return nil, roledomain.ErrNotFound
	}
	role.Name = in.Name
	role.Slug = in.Slug
	role.Permissions = in.Permissions
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, tenantID, id string) error {
	role, ok := r.items[id]
	if !ok || role.TenantID != tenantID {
		return roledomain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// fixture wires real services over the in-memory repos behind a real router.
type fixture struct {
	router       *gin.Engine
	authRepo     *fakeAuthRepo
	vendorRepo   *fakeVendorRepo
	docRepo      *fakeDocRepo
	outbox       *fakeOutbox
	audit        *fakeAuditRepo
	roleRepo     *fakeRoleRepo
	productRepo  *fakeProductRepo
	categoryRepo *fakeCategoryRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authRepo := newFakeAuthRepo()
	authRepo.addUser("u-admin", "admin@markethub.test", "admin")
	authRepo.addUser("u-viewer", "viewer@markethub.test", "viewer")

	roleRepo := newFakeRoleRepo()
	roleService := roledomain.NewService(roleRepo)
	_, _ = roleRepo.Create(context.Background(), testTenant, roledomain.Input{Name: "Viewer", Slug: "viewer", Permissions: []string{"vendors.view", "products.view"}})

	docRepo := newFakeDocRepo()
	auditRepo := &fakeAuditRepo{}
	outbox := &fakeOutbox{}
	vendorRepo := newFakeVendorRepo()
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo()

	vendorService := vendordomain.NewService(vendorRepo, docRepo, auditRepo, outbox)
	affiliateService := affiliatedomain.NewService(newFakeAffiliateRepo(), docRepo, auditRepo, outbox)
	productService := productdomain.NewService(productRepo, categoryRepo, auditRepo, outbox)
	categoryService := categorydomain.NewService(categoryRepo)

	files, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-issuer", "test-audience", "test-signing-key")
	authService := auth.NewService(authRepo, jwtManager, 15*time.Minute, 24*time.Hour)
	authHandler := handlers.NewAuthHandler(authService, auth.CookieConfig{}, 15*time.Minute, 24*time.Hour)

	cfg := config.Config{Env: "test", EnableAffiliatesModule: true}
	router := server.NewRouter(cfg, slog.Default(), server.Dependencies{
		Pinger:           fakePinger{},
		AuthHandler:      authHandler,
		VendorHandler:    handlers.NewVendorHandler(vendorService, files),
		AffiliateHandler: handlers.NewAffiliateHandler(affiliateService, files),
		ProductHandler:   handlers.NewProductHandler(productService),
		CategoryHandler:  handlers.NewCategoryHandler(categoryService),
		RoleHandler:      handlers.NewRoleHandler(roleService),
		JWTManager:       jwtManager,
		Permissions:      roleService,
	})

	return &fixture{
		router:       router,
		authRepo:     authRepo,
		vendorRepo:   vendorRepo,
		docRepo:      docRepo,
		outbox:       outbox,
		audit:        auditRepo,
		roleRepo:     roleRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// login runs the real login flow and returns the access cookie.
func (f *fixture) login(t *testing.T, email string) *http.Cookie {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + testPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.AccessCookieName {
			return c
		}
	}
	t.Fatal("missing access cookie")
	return nil
}

func (f *fixture) do(t *testing.T, cookie *http.Cookie, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}
