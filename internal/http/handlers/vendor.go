package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/document"
	"github.com/markethub/admin-backend/internal/domain/vendor"
	"github.com/markethub/admin-backend/internal/domain/workflow"
	"github.com/markethub/admin-backend/internal/http/middleware"
)

// FileStore is where uploaded files land. Save returns the stored relative
// path and the byte count actually written.
type FileStore interface {
	Save(tenantID, originalName string, src io.Reader) (string, int64, error)
}

type VendorHandler struct {
	svc   *vendor.Service
	files FileStore
}

func NewVendorHandler(svc *vendor.Service, files FileStore) *VendorHandler {
	return &VendorHandler{svc: svc, files: files}
}

type bankAccountRequest struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	BranchCode    string `json:"branch_code"`
}

type addressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type vendorRequest struct {
	BusinessName   string             `json:"business_name" binding:"required"`
	DisplayName    string             `json:"display_name"`
	TaxID          string             `json:"tax_id"`
	Email          string             `json:"email" binding:"required,email"`
	Phone          string             `json:"phone"`
	Address        addressRequest     `json:"address"`
	BankAccount    bankAccountRequest `json:"bank_account"`
	CommissionRate float64            `json:"commission_rate" binding:"gte=0,lte=100"`
}

// statusRequest is the shared status-shaped transition payload. The workflow
// engine derives the action from it.
type statusRequest struct {
	Status          string `json:"status" binding:"required,workflow_status"`
	IsActive        *bool  `json:"is_active"`
	RejectionReason string `json:"rejection_reason"`
}

func (r statusRequest) targetState() workflow.State {
	target := workflow.State{Status: workflow.Status(r.Status)}
	if r.IsActive != nil {
		target.IsActive = *r.IsActive
	} else if target.Status == workflow.StatusApproved {
		target.IsActive = true
	}
	return target
}

type documentReviewRequest struct {
	Status          string `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason"`
}

func (r vendorRequest) createInput() vendor.CreateInput {
	return vendor.CreateInput{
		BusinessName:   r.BusinessName,
		DisplayName:    r.DisplayName,
		TaxID:          r.TaxID,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        vendor.Address(r.Address),
		BankAccount:    vendor.BankAccount(r.BankAccount),
		CommissionRate: r.CommissionRate,
	}
}

func (h *VendorHandler) List(c *gin.Context) {
	page, perPage := pagination(c)
	filter := vendor.ListFilter{
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	}

	items, total, err := h.svc.List(c.Request.Context(), tenantID(c), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondList(c, items, total, page, perPage)
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), tenantID(c), req.createInput())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (h *VendorHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *VendorHandler) Update(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), tenantID(c), c.Param("id"), vendor.UpdateInput(req.createInput()))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actorID(c), tenantID(c), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *VendorHandler) ChangeStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.svc.ChangeStatus(c.Request.Context(), actorID(c), tenantID(c), c.Param("id"), req.targetState(), req.RejectionReason)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *VendorHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing_file", "multipart field 'file' is required")
		return
	}
	docType := c.PostForm("document_type")
	if docType == "" {
		respondError(c, http.StatusBadRequest, "missing_document_type", "form field 'document_type' is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable_file", "could not read upload")
		return
	}
	defer src.Close()

	tenant := tenantID(c)
	storedPath, size, err := h.files.Save(tenant, fileHeader.Filename, src)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", "could not store upload")
		return
	}

	doc, err := h.svc.AddDocument(c.Request.Context(), tenant, c.Param("id"), document.CreateInput{
		TenantID:     tenant,
		OwnerType:    document.OwnerVendor,
		OwnerID:      c.Param("id"),
		DocumentType: docType,
		FileName:     fileHeader.Filename,
		FileSize:     size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		FileURL:      storedPath,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, doc)
}

func (h *VendorHandler) ReviewDocument(c *gin.Context) {
	var req documentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	doc, err := h.svc.ReviewDocument(c.Request.Context(), actorID(c), tenantID(c), c.Param("id"), c.Param("docId"),
		workflow.Status(req.Status), req.RejectionReason)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, doc)
}

func tenantID(c *gin.Context) string {
	return c.GetString(middleware.CtxTenantID)
}

func actorID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}
