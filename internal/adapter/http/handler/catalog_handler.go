package handler

import (
	"ameen-storefront/internal/adapter/http/dto"
	"ameen-storefront/internal/core/ports"
	"ameen-storefront/pkg/apperror"
	"ameen-storefront/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles product, purchase and download endpoints.
type CatalogHandler struct {
	catalogSvc ports.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogSvc ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// CreateProduct handles POST /api/v1/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	price, ok := dto.ParseAmount(req.Price)
	if !ok {
		response.Error(c, apperror.Validation("price must be a decimal number"))
		return
	}

	product, err := h.catalogSvc.CreateProduct(c.Request.Context(), ports.CreateProductRequest{
		Title:         req.Title,
		Description:   req.Description,
		Price:         price,
		Category:      req.Category,
		PreviewImages: req.PreviewImages,
		DownloadFile:  req.DownloadFile,
		Tags:          req.Tags,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, product)
}

// ListProducts handles GET /api/v1/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogSvc.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// GetProduct handles GET /api/v1/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid product id"))
		return
	}

	product, err := h.catalogSvc.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// Purchase handles POST /api/v1/purchases.
func (h *CatalogHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid product id"))
		return
	}
	amount, ok := dto.ParseAmount(req.Amount)
	if !ok {
		response.Error(c, apperror.Validation("amount must be a decimal number"))
		return
	}

	result, err := h.catalogSvc.Purchase(c.Request.Context(), ports.PurchaseRequest{
		ProductID:     productID,
		CustomerID:    req.CustomerID,
		Amount:        amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// TrackDownload handles GET /api/v1/downloads/:link.
func (h *CatalogHandler) TrackDownload(c *gin.Context) {
	link := "download/" + c.Param("link")

	result, err := h.catalogSvc.TrackDownload(c.Request.Context(), link)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.DownloadResponse{
		File:          result.File,
		DownloadCount: result.DownloadCount,
	})
}
