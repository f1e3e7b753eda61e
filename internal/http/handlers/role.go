package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/role"
)

type RoleHandler struct {
	svc *role.Service
}

func NewRoleHandler(svc *role.Service) *RoleHandler {
	return &RoleHandler{svc: svc}
}

type roleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug"`
	Permissions []string `json:"permissions"`
}

func (h *RoleHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), tenantID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, items)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), tenantID(c), role.Input(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (h *RoleHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *RoleHandler) Update(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), tenantID(c), c.Param("id"), role.Input(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// Permissions returns the static catalog the role editor renders.
func (h *RoleHandler) Permissions(c *gin.Context) {
	respondOK(c, http.StatusOK, role.Catalog)
}
