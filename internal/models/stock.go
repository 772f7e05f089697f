package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType mirrors the closed movement classification.
type MovementType string

// StockMovement maps to the stock_movements table. Rows are append-only.
type StockMovement struct {
	StockMovementID string          `db:"stock_movement_id"`
	ProductID       string          `db:"product_id"`
	MovementType    MovementType    `db:"movement_type"`
	ReferenceType   *string         `db:"reference_type"`
	ReferenceID     *string         `db:"reference_id"`
	Quantity        decimal.Decimal `db:"quantity"`
	CostPrice       decimal.Decimal `db:"cost_price"`
	BalanceBefore   decimal.Decimal `db:"balance_before"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	MovementDate    time.Time       `db:"movement_date"`
	Notes           string          `db:"notes"`
	AuditFields
}
