package repositories

import (
	"context"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for product and movement data
type ProductReader interface {
	// SumStockValuation returns the weighted-average stock valuation
	// (sum of current_stock * cost_price) over active products of a business.
	SumStockValuation(ctx context.Context, businessID string) (decimal.Decimal, error)

	// ListMovementsByProduct retrieves a page of stock movements for a product,
	// newest first, using token-based pagination. Returns the movements and a
	// token for the next page, nil when there are no further pages.
	ListMovementsByProduct(ctx context.Context, productID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error)
}

// ProductStockWriter defines the transactional stock mutations used by the
// stock movement engine. The stock level update and the movement record are
// written inside the same transaction, so neither can exist without the other.
type ProductStockWriter interface {
	// FindProductByIDForUpdate retrieves a product and locks its row for the
	// remainder of the transaction.
	FindProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error)

	// AdjustProductStockInTx applies a signed quantity delta to current_stock as
	// a relative SQL increment within the transaction.
	AdjustProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, userID string, now time.Time) error

	// InsertStockMovementInTx appends a movement record within the transaction.
	InsertStockMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error
}

// ProductRepositoryFacade combines product repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductStockWriter
}

// ProductRepositoryWithTx extends ProductRepositoryFacade with transaction capabilities
type ProductRepositoryWithTx interface {
	ProductRepositoryFacade
	TransactionManager
}
