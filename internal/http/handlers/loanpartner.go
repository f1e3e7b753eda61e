package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/loanpartner"
)

type LoanPartnerHandler struct {
	svc *loanpartner.Service
}

func NewLoanPartnerHandler(svc *loanpartner.Service) *LoanPartnerHandler {
	return &LoanPartnerHandler{svc: svc}
}

type providerRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	LogoURL        string `json:"logo_url" binding:"omitempty,url"`
	ContactEmail   string `json:"contact_email" binding:"omitempty,email"`
	IntegrationKey string `json:"integration_key"`
}

type loanProductRequest struct {
	ProviderID   string  `json:"provider_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	MinAmount    float64 `json:"min_amount" binding:"gte=0"`
	MaxAmount    float64 `json:"max_amount" binding:"gte=0"`
	InterestRate float64 `json:"interest_rate" binding:"gte=0"`
	TermMonths   int     `json:"term_months" binding:"gte=0"`
}

type activeToggleRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *LoanPartnerHandler) ListProviders(c *gin.Context) {
	items, err := h.svc.ListProviders(c.Request.Context(), tenantID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, items)
}

func (h *LoanPartnerHandler) CreateProvider(c *gin.Context) {
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.CreateProvider(c.Request.Context(), tenantID(c), loanpartner.ProviderInput(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (h *LoanPartnerHandler) GetProvider(c *gin.Context) {
	item, err := h.svc.GetProvider(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *LoanPartnerHandler) UpdateProvider(c *gin.Context) {
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.svc.UpdateProvider(c.Request.Context(), tenantID(c), c.Param("id"), loanpartner.ProviderInput(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *LoanPartnerHandler) SetProviderActive(c *gin.Context) {
	var req activeToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "is_active is required")
		return
	}

	updated, err := h.svc.SetProviderActive(c.Request.Context(), actorID(c), tenantID(c), c.Param("id"), *req.IsActive)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *LoanPartnerHandler) ListLoanProducts(c *gin.Context) {
	items, err := h.svc.ListLoanProducts(c.Request.Context(), tenantID(c), c.Query("provider_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, items)
}

func (h *LoanPartnerHandler) CreateLoanProduct(c *gin.Context) {
	var req loanProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.CreateLoanProduct(c.Request.Context(), tenantID(c), loanpartner.LoanProductInput(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (h *LoanPartnerHandler) GetLoanProduct(c *gin.Context) {
	item, err := h.svc.GetLoanProduct(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *LoanPartnerHandler) UpdateLoanProduct(c *gin.Context) {
	var req loanProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.svc.UpdateLoanProduct(c.Request.Context(), tenantID(c), c.Param("id"), loanpartner.LoanProductInput(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *LoanPartnerHandler) SetLoanProductActive(c *gin.Context) {
	var req activeToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "is_active is required")
		return
	}

	updated, err := h.svc.SetLoanProductActive(c.Request.Context(), actorID(c), tenantID(c), c.Param("id"), *req.IsActive)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}
