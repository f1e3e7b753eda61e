package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/affiliate"
	"github.com/markethub/admin-backend/internal/domain/category"
	"github.com/markethub/admin-backend/internal/domain/document"
	"github.com/markethub/admin-backend/internal/domain/loanpartner"
	"github.com/markethub/admin-backend/internal/domain/product"
	"github.com/markethub/admin-backend/internal/domain/role"
	"github.com/markethub/admin-backend/internal/domain/vendor"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

// Every endpoint answers the same envelope so clients never branch on shape.

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data any, total int64, page, perPage int) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     data,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"success": false, "error": code, "message": message})
}

// respondDomainError maps service errors onto HTTP statuses. Unrecognized
// errors are a 500 with a generic body; the real cause goes to the log, not
// the client.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vendor.ErrNotFound),
		errors.Is(err, affiliate.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, loanpartner.ErrNotFound),
		errors.Is(err, role.ErrNotFound),
		errors.Is(err, document.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, vendor.ErrInvalidInput),
		errors.Is(err, affiliate.ErrInvalidInput),
		errors.Is(err, affiliate.ErrInvalidProgram),
		errors.Is(err, product.ErrInvalidInput),
		errors.Is(err, category.ErrInvalidInput),
		errors.Is(err, loanpartner.ErrInvalidInput),
		errors.Is(err, role.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, role.ErrAdminImmutable):
		respondError(c, http.StatusUnprocessableEntity, "admin_role_immutable", err.Error())
	case errors.Is(err, workflow.ErrAlreadyInState):
		respondError(c, http.StatusConflict, "already_in_state", err.Error())
	case errors.Is(err, workflow.ErrReasonRequired):
		respondError(c, http.StatusUnprocessableEntity, "rejection_reason_required", err.Error())
	case errors.Is(err, workflow.ErrDocumentsNotApproved):
		respondError(c, http.StatusUnprocessableEntity, "documents_not_approved", err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		respondError(c, http.StatusBadRequest, "invalid_transition", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

func pagination(c *gin.Context) (page, perPage int) {
	page = intQuery(c, "page", 1)
	perPage = intQuery(c, "per_page", 20)
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
