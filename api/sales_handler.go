package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"panda_pos/internal/catalog"
	"panda_pos/internal/sales"
)

// salesHandler holds the sales service and implements HTTP handlers for sale
// transactions and sale reports.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

type createSaleRequest struct {
	ProductID       string           `json:"product_id" binding:"required"`
	PaymentMethodID string           `json:"payment_method_id" binding:"required"`
	Quantity        int              `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	Date            *sales.Date      `json:"date"`
}

type updateSaleRequest struct {
	ProductID       string          `json:"product_id" binding:"required"`
	PaymentMethodID string          `json:"payment_method_id" binding:"required"`
	Quantity        int             `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
	Date            sales.Date      `json:"date" binding:"required"`
}

// handleCreateSale handles the POST /sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req createSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.salesService.AttemptSale(sales.CreateSaleInput{
		ProductID:       req.ProductID,
		PaymentMethodID: req.PaymentMethodID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		Date:            req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound),
			errors.Is(err, catalog.ErrPaymentMethodNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, sales.ErrInvalidSale):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, catalog.ErrInsufficientStock):
			ctx.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
		default:
			h.logger.Error("failed to create sale",
				zap.Error(err),
				zap.String("product_id", req.ProductID),
				zap.Int("quantity", req.Quantity),
			)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sale"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleGetSale handles the GET /sales/:id endpoint.
func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.GetSale(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, sales.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get sale"})
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

// handleListSales handles the GET /sales endpoint.
func (h *salesHandler) handleListSales(ctx *gin.Context) {
	all, err := h.salesService.ListSales()
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}
	ctx.JSON(http.StatusOK, all)
}

// handleUpdateSale handles the PUT /sales/:id endpoint.
func (h *salesHandler) handleUpdateSale(ctx *gin.Context) {
	var req updateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.salesService.UpdateSale(ctx.Param("id"), sales.UpdateSaleInput{
		ProductID:       req.ProductID,
		PaymentMethodID: req.PaymentMethodID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		Date:            req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		case errors.Is(err, sales.ErrInvalidSale):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to update sale", zap.String("sale_id", ctx.Param("id")), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update sale"})
		}
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

// handleDeleteSale handles the DELETE /sales/:id endpoint.
func (h *salesHandler) handleDeleteSale(ctx *gin.Context) {
	if err := h.salesService.DeleteSale(ctx.Param("id")); err != nil {
		if errors.Is(err, sales.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		h.logger.Error("failed to delete sale", zap.String("sale_id", ctx.Param("id")), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete sale"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleSalesByProduct handles the GET /reports/sales/product/:id endpoint.
func (h *salesHandler) handleSalesByProduct(ctx *gin.Context) {
	h.respondList(ctx)(h.salesService.SalesByProduct(ctx.Param("id")))
}

// handleSalesByPaymentMethod handles the GET /reports/sales/payment-method/:id endpoint.
func (h *salesHandler) handleSalesByPaymentMethod(ctx *gin.Context) {
	h.respondList(ctx)(h.salesService.SalesByPaymentMethod(ctx.Param("id")))
}

// handleSalesByDate handles the GET /reports/sales/date/:date endpoint.
func (h *salesHandler) handleSalesByDate(ctx *gin.Context) {
	date, err := sales.ParseDate(ctx.Param("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondList(ctx)(h.salesService.SalesByDate(date))
}

// handleSalesByDateRange handles the GET /reports/sales/range?from=&to= endpoint.
func (h *salesHandler) handleSalesByDateRange(ctx *gin.Context) {
	from, to, ok := h.bindRange(ctx)
	if !ok {
		return
	}
	h.respondList(ctx)(h.salesService.SalesByDateRange(from, to))
}

// handleSalesToday handles the GET /reports/sales/today endpoint.
func (h *salesHandler) handleSalesToday(ctx *gin.Context) {
	h.respondList(ctx)(h.salesService.SalesToday())
}

// handleTotalByProduct handles the GET /reports/sales/total/product/:id?from=&to= endpoint.
func (h *salesHandler) handleTotalByProduct(ctx *gin.Context) {
	from, to, ok := h.bindRange(ctx)
	if !ok {
		return
	}
	total, err := h.salesService.TotalByProductAndDateRange(ctx.Param("id"), from, to)
	if err != nil {
		if errors.Is(err, sales.ErrInvalidRange) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to total sales", zap.String("product_id", ctx.Param("id")), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to total sales"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"total": total})
}

// handleQuantityByProduct handles the GET /reports/sales/quantity/product/:id endpoint.
func (h *salesHandler) handleQuantityByProduct(ctx *gin.Context) {
	quantity, err := h.salesService.QuantityByProduct(ctx.Param("id"))
	if err != nil {
		h.logger.Error("failed to sum sale quantities", zap.String("product_id", ctx.Param("id")), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sum sale quantities"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"quantity": quantity})
}

func (h *salesHandler) bindRange(ctx *gin.Context) (sales.Date, sales.Date, bool) {
	from, err := sales.ParseDate(ctx.Query("from"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date, expected 2006-01-02"})
		return sales.Date{}, sales.Date{}, false
	}
	to, err := sales.ParseDate(ctx.Query("to"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date, expected 2006-01-02"})
		return sales.Date{}, sales.Date{}, false
	}
	return from, to, true
}

func (h *salesHandler) respondList(ctx *gin.Context) func([]*sales.Sale, error) {
	return func(list []*sales.Sale, err error) {
		if err != nil {
			if errors.Is(err, sales.ErrInvalidRange) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			h.logger.Error("failed to query sales", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sales"})
			return
		}
		ctx.JSON(http.StatusOK, list)
	}
}
