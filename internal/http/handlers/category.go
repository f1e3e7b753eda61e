package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/category"
)

type CategoryHandler struct {
	svc *category.Service
}

func NewCategoryHandler(svc *category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), tenantID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, items)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), tenantID(c), category.CreateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	updated, err := h.svc.Update(c.Request.Context(), tenantID(c), c.Param("id"), category.UpdateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    isActive,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
