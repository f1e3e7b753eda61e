package product

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/markethub/admin-backend/internal/domain/audit"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

const outboxTopicStatusChanged = "product_status_changed"

var bulkUploadHeaders = []string{
	"name",
	"sku",
	"description",
	"price",
	"currency",
	"quantity",
}

type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type BulkUploadResult struct {
	ProductIDs []string          `json:"product_ids"`
	Processed  int               `json:"processed"`
	Errors     []ValidationError `json:"errors"`
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, topic string, payload []byte) error
}

type Service struct {
	repo       Repository
	categories CategoryChecker
	auditRepo  audit.Repository
	outboxRepo OutboxRepository
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryChecker, auditRepo audit.Repository, outboxRepo OutboxRepository) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*Entity, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" || in.Price < 0 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(in.Currency) == "" {
		in.Currency = "TZS"
	}
	for _, catID := range in.CategoryIDs {
		ok, err := s.categories.Exists(ctx, tenantID, catID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %s", ErrInvalidInput, catID)
		}
	}
	return s.repo.Create(ctx, tenantID, in)
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Entity, error) {
	out, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	out.AllowedActions = workflow.AllowedActions(workflow.State{Status: out.VerificationStatus, IsActive: out.IsActive})
	return out, nil
}

func (s *Service) List(ctx context.Context, tenantID string, f ListFilter) ([]Entity, int64, error) {
	switch f.Tab {
	case "", TabAll, TabPublished, TabDraft, TabPending, TabRejected:
	default:
		return nil, 0, fmt.Errorf("%w: unknown tab %s", ErrInvalidInput, f.Tab)
	}
	items, total, err := s.repo.List(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].AllowedActions = workflow.AllowedActions(workflow.State{Status: items[i].VerificationStatus, IsActive: items[i].IsActive})
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, tenantID, id string, in UpdateInput) (*Entity, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" || in.Price < 0 {
		return nil, ErrInvalidInput
	}
	for _, catID := range in.CategoryIDs {
		ok, err := s.categories.Exists(ctx, tenantID, catID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %s", ErrInvalidInput, catID)
		}
	}
	return s.repo.Update(ctx, tenantID, id, in)
}

func (s *Service) Delete(ctx context.Context, actorID, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, tenantID, id); err != nil {
		return err
	}
	_ = s.auditRepo.Log(ctx, audit.LogInput{
		TenantID:    tenantID,
		AdminUserID: actorID,
		Action:      "product_deleted",
		TargetType:  "product",
		TargetID:    id,
	})
	return nil
}

// ChangeStatus drives the verification workflow; the lifecycle status column
// follows it (approved+active publishes, rejection parks the entry).
func (s *Service) ChangeStatus(ctx context.Context, actorID, tenantID, id string, target workflow.State, reason string) (*Entity, error) {
	cur, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	action, err := workflow.ActionFor(workflow.State{Status: cur.VerificationStatus, IsActive: cur.IsActive}, target)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Apply(workflow.State{Status: cur.VerificationStatus, IsActive: cur.IsActive}, action, workflow.ApplyInput{Reason: reason})
	if err != nil {
		return nil, err
	}

	update := StatusUpdate{
		VerificationStatus: next.Status,
		IsActive:           next.IsActive,
		Status:             lifecycleFor(next),
	}
	if action == workflow.ActionReject {
		update.RejectionReason = strings.TrimSpace(reason)
	}

	updated, err := s.repo.UpdateStatus(ctx, tenantID, id, update)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]any{
		"product_id": id,
		"action":     string(action),
		"status":     string(next.Status),
		"is_active":  next.IsActive,
	})
	_ = s.auditRepo.Log(ctx, audit.LogInput{
		TenantID:    tenantID,
		AdminUserID: actorID,
		Action:      "product_" + string(action),
		TargetType:  "product",
		TargetID:    id,
		Payload:     payload,
	})
	if err := s.outboxRepo.Enqueue(ctx, outboxTopicStatusChanged, payload); err != nil {
		return nil, err
	}
	return updated, nil
}

func lifecycleFor(state workflow.State) string {
	switch {
	case state.Status == workflow.StatusApproved && state.IsActive:
		return LifecycleActive
	case state.Status == workflow.StatusApproved:
		return LifecycleDraft
	case state.Status == workflow.StatusPending:
		return LifecyclePending
	default:
		return LifecycleDraft
	}
}

func (s *Service) TabCounts(ctx context.Context, tenantID, vendorID string) (*TabCounts, error) {
	return s.repo.CountTabs(ctx, tenantID, vendorID)
}

// ProcessBulkUpload ingests a CSV catalog file row by row. Bad rows are
// reported and skipped; good rows are created.
func (s *Service) ProcessBulkUpload(ctx context.Context, tenantID, vendorID string, csvReader io.Reader) (*BulkUploadResult, error) {
	reader := csv.NewReader(csvReader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed csv", ErrInvalidInput)
	}
	if len(rows) < 2 {
		return &BulkUploadResult{ProductIDs: []string{}, Errors: []ValidationError{{Row: 1, Field: "file", Message: "csv must include header and at least one data row"}}}, nil
	}
	if err := validateHeader(rows[0]); err != nil {
		return &BulkUploadResult{ProductIDs: []string{}, Errors: []ValidationError{{Row: 1, Field: "header", Message: err.Error()}}}, nil
	}

	result := &BulkUploadResult{ProductIDs: []string{}, Errors: []ValidationError{}}
	for i := 1; i < len(rows); i++ {
		rowNum := i + 1

		parsed, validationErr := parseRow(rows[i])
		if validationErr != nil {
			result.Errors = append(result.Errors, ValidationError{Row: rowNum, Field: validationErr.Field, Message: validationErr.Message})
			continue
		}

		exists, err := s.repo.ExistsSKU(ctx, tenantID, parsed.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Errors = append(result.Errors, ValidationError{Row: rowNum, Field: "sku", Message: "sku already exists"})
			continue
		}

		created, err := s.repo.Create(ctx, tenantID, CreateInput{
			VendorID:    vendorID,
			Name:        parsed.Name,
			SKU:         parsed.SKU,
			Description: parsed.Description,
			Price:       parsed.Price,
			Currency:    parsed.Currency,
			Inventory:   Inventory{Quantity: parsed.Quantity},
		})
		if err != nil {
			return nil, err
		}

		result.ProductIDs = append(result.ProductIDs, created.ID)
		result.Processed++
	}

	return result, nil
}

type parsedRow struct {
	Name        string
	SKU         string
	Description string
	Price       float64
	Currency    string
	Quantity    int
}

type rowError struct {
	Field   string
	Message string
}

func validateHeader(header []string) error {
	if len(header) != len(bulkUploadHeaders) {
		return fmt.Errorf("expected %d columns, got %d", len(bulkUploadHeaders), len(header))
	}
	for i, want := range bulkUploadHeaders {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("expected column %d to be %q", i+1, want)
		}
	}
	return nil
}

func parseRow(record []string) (*parsedRow, *rowError) {
	if len(record) != len(bulkUploadHeaders) {
		return nil, &rowError{Field: "row", Message: "wrong column count"}
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return nil, &rowError{Field: "name", Message: "name is required"}
	}
	sku := strings.TrimSpace(record[1])
	if sku == "" {
		return nil, &rowError{Field: "sku", Message: "sku is required"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil || price < 0 {
		return nil, &rowError{Field: "price", Message: "price must be a non-negative number"}
	}

	currency := strings.ToUpper(strings.TrimSpace(record[4]))
	if len(currency) != 3 {
		return nil, &rowError{Field: "currency", Message: "currency must be a 3-letter code"}
	}

	quantity := 0
	if q := strings.TrimSpace(record[5]); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil || quantity < 0 {
			return nil, &rowError{Field: "quantity", Message: "quantity must be a non-negative integer"}
		}
	}

	return &parsedRow{
		Name:        name,
		SKU:         sku,
		Description: strings.TrimSpace(record[2]),
		Price:       price,
		Currency:    currency,
		Quantity:    quantity,
	}, nil
}
