package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/affiliate"
	"github.com/markethub/admin-backend/internal/domain/document"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

type AffiliateHandler struct {
	svc   *affiliate.Service
	files FileStore
}

func NewAffiliateHandler(svc *affiliate.Service, files FileStore) *AffiliateHandler {
	return &AffiliateHandler{svc: svc, files: files}
}

type socialMediaRequest struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
	Twitter   string `json:"twitter"`
}

type affiliateCreateRequest struct {
	Program        string             `json:"program" binding:"required,oneof=affiliate winga"`
	VendorID       string             `json:"vendor_id"`
	FirstName      string             `json:"first_name" binding:"required"`
	LastName       string             `json:"last_name" binding:"required"`
	Email          string             `json:"email" binding:"required,email"`
	Phone          string             `json:"phone"`
	CommissionRate float64            `json:"commission_rate" binding:"gte=0,lte=100"`
	SocialMedia    socialMediaRequest `json:"social_media"`
	BankAccount    bankAccountRequest `json:"bank_account"`
}

type affiliateUpdateRequest struct {
	VendorID       string             `json:"vendor_id"`
	FirstName      string             `json:"first_name" binding:"required"`
	LastName       string             `json:"last_name" binding:"required"`
	Email          string             `json:"email" binding:"required,email"`
	Phone          string             `json:"phone"`
	CommissionRate float64            `json:"commission_rate" binding:"gte=0,lte=100"`
	SocialMedia    socialMediaRequest `json:"social_media"`
	BankAccount    bankAccountRequest `json:"bank_account"`
}

func (h *AffiliateHandler) List(c *gin.Context) {
	page, perPage := pagination(c)
	filter := affiliate.ListFilter{
		Program: c.Query("program"),
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

func (h *AffiliateHandler) Create(c *gin.Context) {
	var req affiliateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), tenantID(c), affiliate.CreateInput{
		Program:        req.Program,
		VendorID:       req.VendorID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		SocialMedia:    affiliate.SocialMedia(req.SocialMedia),
		BankAccount:    affiliate.BankAccount(req.BankAccount),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (h *AffiliateHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *AffiliateHandler) Update(c *gin.Context) {
	var req affiliateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), tenantID(c), c.Param("id"), affiliate.UpdateInput{
		VendorID:       req.VendorID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		SocialMedia:    affiliate.SocialMedia(req.SocialMedia),
		BankAccount:    affiliate.BankAccount(req.BankAccount),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *AffiliateHandler) ChangeStatus(c *gin.Context) {
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

func (h *AffiliateHandler) UploadDocument(c *gin.Context) {
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
		OwnerType:    document.OwnerAffiliate,
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

func (h *AffiliateHandler) ReviewDocument(c *gin.Context) {
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
