package models

import "github.com/shopspring/decimal"

// Product maps to the products table.
type Product struct {
	ProductID  string `db:"product_id"`
	BusinessID string `db:"business_id"`
	Name       string `db:"name"`
	IsActive   bool   `db:"is_active"`
	AuditFields
	CurrentStock decimal.Decimal `db:"current_stock"`
	CostPrice    decimal.Decimal `db:"cost_price"`
}
