package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/product"
)

type ProductHandler struct {
	svc *product.Service
}

func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type variantRequest struct {
	Type  string  `json:"type" binding:"required"`
	Value string  `json:"value" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

type inventoryRequest struct {
	Quantity          int `json:"quantity" binding:"gte=0"`
	LowStockThreshold int `json:"low_stock_threshold" binding:"gte=0"`
}

type productRequest struct {
	VendorID    string           `json:"vendor_id" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	SKU         string           `json:"sku" binding:"required"`
	Description string           `json:"description"`
	Price       float64          `json:"price" binding:"gte=0"`
	Currency    string           `json:"currency"`
	Inventory   inventoryRequest `json:"inventory"`
	CategoryIDs []string         `json:"category_ids"`
	Variants    []variantRequest `json:"variants" binding:"dive"`
}

func (r productRequest) createInput() product.CreateInput {
	variants := make([]product.Variant, 0, len(r.Variants))
	for _, v := range r.Variants {
		variants = append(variants, product.Variant(v))
	}
	return product.CreateInput{
		VendorID:    r.VendorID,
		Name:        r.Name,
		SKU:         r.SKU,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		Inventory:   product.Inventory(r.Inventory),
		CategoryIDs: r.CategoryIDs,
		Variants:    variants,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, perPage := pagination(c)
	filter := product.ListFilter{
		VendorID: c.Query("vendor_id"),
		Tab:      c.Query("tab"),
		Search:   c.Query("search"),
		Page:     page,
		PerPage:  perPage,
	}

	items, total, err := h.svc.List(c.Request.Context(), tenantID(c), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondList(c, items, total, page, perPage)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
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

func (h *ProductHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	in := req.createInput()
	updated, err := h.svc.Update(c.Request.Context(), tenantID(c), c.Param("id"), product.UpdateInput{
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		Inventory:   in.Inventory,
		CategoryIDs: in.CategoryIDs,
		Variants:    in.Variants,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actorID(c), tenantID(c), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *ProductHandler) ChangeStatus(c *gin.Context) {
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

func (h *ProductHandler) TabCounts(c *gin.Context) {
	counts, err := h.svc.TabCounts(c.Request.Context(), tenantID(c), c.Query("vendor_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, counts)
}

// BulkUpload ingests a CSV of products. Row failures collect into the
// response; they never abort the rows that validated.
func (h *ProductHandler) BulkUpload(c *gin.Context) {
	vendorID := c.PostForm("vendor_id")
	if vendorID == "" {
		respondError(c, http.StatusBadRequest, "missing_vendor_id", "form field 'vendor_id' is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing_file", "multipart field 'file' is required")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable_file", "could not read upload")
		return
	}
	defer src.Close()

	result, err := h.svc.ProcessBulkUpload(c.Request.Context(), tenantID(c), vendorID, src)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}
