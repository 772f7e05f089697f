package services

import (
	"context"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/bizpilot/bizpilot_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// StockReaderSvc defines read operations for stock data
type StockReaderSvc interface {
	// GetStockValuation sums current_stock * cost_price over active products of
	// a business. Weighted-average approximation, not FIFO/LIFO.
	GetStockValuation(ctx context.Context, businessID string) (decimal.Decimal, error)

	// ListMovementsByProduct retrieves a page of movements for a product using
	// token-based pagination.
	ListMovementsByProduct(ctx context.Context, productID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error)
}

// StockWriterSvc defines the stock movement engine operations
type StockWriterSvc interface {
	// UpdateStock applies a signed quantity delta to a product's stock level and
	// appends the corresponding movement record atomically.
	UpdateStock(ctx context.Context, req dto.UpdateStockRequest) (*domain.StockMovement, error)
}

// StockSvcFacade combines all stock service interfaces
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
