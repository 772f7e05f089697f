package domain

import "github.com/shopspring/decimal"

// Product represents an inventory item with a current stock level and a
// weighted-average cost basis.
type Product struct {
	ProductID  string `json:"productID"`  // Primary Key (UUID)
	BusinessID string `json:"businessID"` // Owning business
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	AuditFields
	CurrentStock decimal.Decimal `json:"currentStock"` // Never negative
	CostPrice    decimal.Decimal `json:"costPrice"`    // Weighted-average cost per unit
}
