package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	portssvc "github.com/bizpilot/bizpilot_backend/internal/core/ports/services"
	"github.com/bizpilot/bizpilot_backend/internal/dto"
	"github.com/bizpilot/bizpilot_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// ErrUnknownMovementType rejects movement types outside the declared set.
var ErrUnknownMovementType = fmt.Errorf("%w: unknown movement type", apperrors.ErrValidation)

// ErrNegativeCostPrice rejects an explicit negative cost override.
var ErrNegativeCostPrice = fmt.Errorf("%w: cost price must be non-negative", apperrors.ErrValidation)

// stockService is the stock movement engine. It applies signed quantity deltas
// to product stock levels and maintains the append-only movement ledger.
type stockService struct {
	productRepo portsrepo.ProductRepositoryWithTx
}

// NewStockService creates a new stock service.
func NewStockService(productRepo portsrepo.ProductRepositoryWithTx) portssvc.StockSvcFacade {
	return &stockService{productRepo: productRepo}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// UpdateStock validates the request, guards the non-negative-stock invariant,
// and applies the stock level change together with its movement record in a
// single transaction.
func (s *stockService) UpdateStock(ctx context.Context, req dto.UpdateStockRequest) (*domain.StockMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ProductID == "" {
		return nil, apperrors.NewMissingFieldError("productID")
	}
	if req.Quantity.IsZero() {
		return nil, apperrors.NewMissingFieldError("quantity")
	}
	if req.MovementType == "" {
		return nil, apperrors.NewMissingFieldError("movementType")
	}
	if req.CreatedBy == "" {
		return nil, apperrors.NewMissingFieldError("createdBy")
	}
	movementType := domain.MovementType(req.MovementType)
	if !movementType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMovementType, req.MovementType)
	}
	if req.CostPrice != nil && req.CostPrice.IsNegative() {
		return nil, ErrNegativeCostPrice
	}

	tx, err := s.productRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.productRepo.Rollback(ctx, tx)

	// Row lock prevents two concurrent movements from reading the same stock
	// level and both passing the negative-stock gate.
	product, err := s.productRepo.FindProductByIDForUpdate(ctx, tx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", req.ProductID, err)
	}

	newStock := product.CurrentStock.Add(req.Quantity)
	if newStock.IsNegative() {
		return nil, &apperrors.InsufficientStockError{
			ProductName:  product.Name,
			CurrentStock: product.CurrentStock,
			Requested:    req.Quantity,
		}
	}

	costPrice := product.CostPrice
	if req.CostPrice != nil {
		costPrice = *req.CostPrice
	}

	now := time.Now().UTC()
	movementDate := now
	if req.MovementDate != nil {
		movementDate = *req.MovementDate
	}

	if err := s.productRepo.AdjustProductStockInTx(ctx, tx, req.ProductID, req.Quantity, req.CreatedBy, now); err != nil {
		return nil, fmt.Errorf("failed to adjust stock for product %s: %w", req.ProductID, err)
	}

	movement := domain.StockMovement{
		StockMovementID: uuid.NewString(),
		ProductID:       req.ProductID,
		MovementType:    movementType,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		Quantity:        req.Quantity,
		CostPrice:       costPrice,
		BalanceBefore:   product.CurrentStock,
		BalanceAfter:    newStock,
		MovementDate:    movementDate,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CreatedBy,
		},
	}
	if err := s.productRepo.InsertStockMovementInTx(ctx, tx, movement); err != nil {
		return nil, fmt.Errorf("failed to record stock movement for product %s: %w", req.ProductID, err)
	}

	if err := s.productRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit stock movement for product %s: %w", req.ProductID, err)
	}

	logger.Info("Stock updated",
		slog.String("product_id", req.ProductID),
		slog.String("movement_type", string(movementType)),
		slog.String("quantity", req.Quantity.String()),
		slog.String("balance_after", newStock.String()),
	)
	return &movement, nil
}

// GetStockValuation sums current_stock * cost_price over active products of the
// business. The stored costPrice is assumed to be the weighted-average cost.
func (s *stockService) GetStockValuation(ctx context.Context, businessID string) (decimal.Decimal, error) {
	if businessID == "" {
		return decimal.Zero, apperrors.NewMissingFieldError("businessID")
	}
	total, err := s.productRepo.SumStockValuation(ctx, businessID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute stock valuation: %w", err)
	}
	return total, nil
}

// ListMovementsByProduct retrieves a page of movements for a product using
// token-based pagination.
func (s *stockService) ListMovementsByProduct(ctx context.Context, productID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	if productID == "" {
		return nil, nil, apperrors.NewMissingFieldError("productID")
	}
	if limit <= 0 {
		limit = 20
	}
	movements, newNextToken, err := s.productRepo.ListMovementsByProduct(ctx, productID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, newNextToken, nil
}
