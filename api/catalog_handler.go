package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"panda_pos/internal/catalog"
)

// catalogHandler implements HTTP handlers for product and payment-method
// management.
type catalogHandler struct {
	catalogService *catalog.Service
	logger         *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *catalog.Service, logger *zap.Logger) *catalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

type productRequest struct {
	Name  string          `json:"name" binding:"required"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

type paymentMethodRequest struct {
	Label string `json:"label" binding:"required"`
}

// handleCreateProduct handles the POST /products endpoint.
func (h *catalogHandler) handleCreateProduct(ctx *gin.Context) {
	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	p, err := h.catalogService.CreateProduct(req.Name, req.Stock, req.Price)
	if err != nil {
		h.logger.Warn("failed to create product", zap.String("name", req.Name), zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, p)
}

// handleGetProduct handles the GET /products/:id endpoint.
func (h *catalogHandler) handleGetProduct(ctx *gin.Context) {
	p, err := h.catalogService.GetProduct(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// handleListProducts handles the GET /products endpoint.
func (h *catalogHandler) handleListProducts(ctx *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// handleUpdateProduct handles the PUT /products/:id endpoint.
func (h *catalogHandler) handleUpdateProduct(ctx *gin.Context) {
	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	p, err := h.catalogService.UpdateProduct(ctx.Param("id"), req.Name, req.Stock, req.Price)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// handleDeleteProduct handles the DELETE /products/:id endpoint.
func (h *catalogHandler) handleDeleteProduct(ctx *gin.Context) {
	if err := h.catalogService.DeleteProduct(ctx.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleCreatePaymentMethod handles the POST /payment-methods endpoint.
func (h *catalogHandler) handleCreatePaymentMethod(ctx *gin.Context) {
	var req paymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	pm, err := h.catalogService.CreatePaymentMethod(req.Label)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, pm)
}

// handleGetPaymentMethod handles the GET /payment-methods/:id endpoint.
func (h *catalogHandler) handleGetPaymentMethod(ctx *gin.Context) {
	pm, err := h.catalogService.GetPaymentMethod(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrPaymentMethodNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get payment method"})
		return
	}
	ctx.JSON(http.StatusOK, pm)
}

// handleListPaymentMethods handles the GET /payment-methods endpoint.
func (h *catalogHandler) handleListPaymentMethods(ctx *gin.Context) {
	methods, err := h.catalogService.ListPaymentMethods()
	if err != nil {
		h.logger.Error("failed to list payment methods", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payment methods"})
		return
	}
	ctx.JSON(http.StatusOK, methods)
}

// handleUpdatePaymentMethod handles the PUT /payment-methods/:id endpoint.
func (h *catalogHandler) handleUpdatePaymentMethod(ctx *gin.Context) {
	var req paymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	pm, err := h.catalogService.UpdatePaymentMethod(ctx.Param("id"), req.Label)
	if err != nil {
		if errors.Is(err, catalog.ErrPaymentMethodNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, pm)
}

// handleDeletePaymentMethod handles the DELETE /payment-methods/:id endpoint.
func (h *catalogHandler) handleDeletePaymentMethod(ctx *gin.Context) {
	if err := h.catalogService.DeletePaymentMethod(ctx.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrPaymentMethodNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete payment method"})
		return
	}
	ctx.Status(http.StatusNoContent)
}
