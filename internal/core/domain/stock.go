package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType enumerates supported inventory movements.
type MovementType string

const (
	MovementPurchase   MovementType = "PURCHASE"
	MovementSale       MovementType = "SALE"
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementTransfer   MovementType = "TRANSFER"
	MovementReturn     MovementType = "RETURN"
)

// IsValid reports whether the movement type is one of the declared values.
func (m MovementType) IsValid() bool {
	switch m {
	case MovementPurchase, MovementSale, MovementAdjustment, MovementTransfer, MovementReturn:
		return true
	}
	return false
}

// StockMovement is an append-only record of a quantity change to a product's
// stock level. BalanceBefore/BalanceAfter snapshot the product's stock
// immediately around the movement, forming a continuous movement ledger.
type StockMovement struct {
	StockMovementID string          `json:"stockMovementID"` // Primary Key (UUID)
	ProductID       string          `json:"productID"`       // FK -> Product (Not Null)
	MovementType    MovementType    `json:"movementType"`
	ReferenceType   *string         `json:"referenceType"` // Optional link to a source document
	ReferenceID     *string         `json:"referenceID"`
	Quantity        decimal.Decimal `json:"quantity"`  // Signed delta: positive receipt, negative issue
	CostPrice       decimal.Decimal `json:"costPrice"` // Cost snapshot at movement time
	BalanceBefore   decimal.Decimal `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	MovementDate    time.Time       `json:"movementDate"`
	Notes           string          `json:"notes"`
	AuditFields
}
