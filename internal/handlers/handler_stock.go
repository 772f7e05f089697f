package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	portssvc "github.com/bizpilot/bizpilot_backend/internal/core/ports/services"
	"github.com/bizpilot/bizpilot_backend/internal/dto"
	"github.com/bizpilot/bizpilot_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// stockHandler handles HTTP requests related to stock levels and movements.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

// newStockHandler creates a new stockHandler.
func newStockHandler(stockService portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{
		stockService: stockService,
	}
}

// updateStock applies a signed stock delta and records the movement.
func (h *stockHandler) updateStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updateReq := dto.UpdateStockRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	movement, err := h.stockService.UpdateStock(c.Request.Context(), updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientStock):
			logger.Warn("Insufficient stock for movement", slog.String("product_id", updateReq.ProductID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Product not found for stock update", slog.String("product_id", updateReq.ProductID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, apperrors.ErrMissingField), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating stock", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update stock in service", slog.String("error", err.Error()), slog.String("product_id", updateReq.ProductID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		}
		return
	}

	logger.Info("Stock updated successfully",
		slog.String("product_id", movement.ProductID),
		slog.String("stock_movement_id", movement.StockMovementID),
		slog.String("balance_after", movement.BalanceAfter.String()),
	)
	c.JSON(http.StatusOK, dto.ToStockMovementResponse(movement))
}

// getStockValuation returns the aggregate stock valuation for a business.
func (h *stockHandler) getStockValuation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")

	total, err := h.stockService.GetStockValuation(c.Request.Context(), businessID)
	if err != nil {
		logger.Error("Failed to get stock valuation", slog.String("error", err.Error()), slog.String("business_id", businessID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stock valuation"})
		return
	}

	c.JSON(http.StatusOK, dto.StockValuationResponse{BusinessID: businessID, TotalValue: total})
}

// listStockMovements retrieves recent movements for a product.
func (h *stockHandler) listStockMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if tokenStr := c.Query("nextToken"); tokenStr != "" {
		nextToken = &tokenStr
	}

	movements, newNextToken, err := h.stockService.ListMovementsByProduct(c.Request.Context(), productID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token listing stock movements", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken parameter"})
			return
		}
		logger.Error("Failed to list stock movements", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock movements"})
		return
	}

	c.JSON(http.StatusOK, dto.ListStockMovementsResponse{
		Movements: dto.ToStockMovementResponses(movements),
		NextToken: newNextToken,
	})
}

// registerStockRoutes registers stock specific routes
func registerStockRoutes(group *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	stockHandler := newStockHandler(stockService)

	stock := group.Group("/stock")
	{
		stock.POST("/movements", stockHandler.updateStock)
	}

	group.GET("/products/:productID/movements", stockHandler.listStockMovements)
	group.GET("/businesses/:businessID/stock-valuation", stockHandler.getStockValuation)
}
