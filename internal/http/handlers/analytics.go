package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/analytics"
)

type AnalyticsHandler struct {
	svc *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	summary, err := h.svc.Dashboard(c.Request.Context(), tenantID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, summary)
}
