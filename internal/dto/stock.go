package dto

import (
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateStockRequest is a stock movement request. Quantity is a signed delta:
// positive for receipts, negative for issues.
type UpdateStockRequest struct {
	ProductID     string           `json:"productID" binding:"required"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	MovementType  string           `json:"movementType" binding:"required,movementtype"`
	ReferenceType *string          `json:"referenceType"`
	ReferenceID   *string          `json:"referenceID"`
	CostPrice     *decimal.Decimal `json:"costPrice"` // Falls back to the product's cost basis
	Notes         string           `json:"notes"`
	MovementDate  *time.Time       `json:"movementDate"` // Defaults to now
	CreatedBy     string           `json:"createdBy" binding:"required"`
}

// StockMovementResponse defines the data returned for a stock movement.
type StockMovementResponse struct {
	StockMovementID string          `json:"stockMovementID"`
	ProductID       string          `json:"productID"`
	MovementType    string          `json:"movementType"`
	ReferenceType   *string         `json:"referenceType,omitempty"`
	ReferenceID     *string         `json:"referenceID,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	BalanceBefore   decimal.Decimal `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	MovementDate    time.Time       `json:"movementDate"`
	Notes           string          `json:"notes,omitempty"`
}

// StockValuationResponse defines the aggregate valuation response.
type StockValuationResponse struct {
	BusinessID string          `json:"businessID"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// ToStockMovementResponse converts a domain.StockMovement to StockMovementResponse.
func ToStockMovementResponse(m *domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		StockMovementID: m.StockMovementID,
		ProductID:       m.ProductID,
		MovementType:    string(m.MovementType),
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		Quantity:        m.Quantity,
		CostPrice:       m.CostPrice,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		MovementDate:    m.MovementDate,
		Notes:           m.Notes,
	}
}

// ListStockMovementsResponse is a page of stock movements with a pagination
// token for the next page.
type ListStockMovementsResponse struct {
	Movements []StockMovementResponse `json:"movements"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToStockMovementResponses converts a slice of domain.StockMovement.
func ToStockMovementResponses(movements []domain.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToStockMovementResponse(&movements[i])
	}
	return responses
}
