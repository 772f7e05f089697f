package mapping

import (
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/bizpilot/bizpilot_backend/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		CurrentStock: m.CurrentStock,
		CostPrice:    m.CostPrice,
	}
}

// ToModelStockMovement converts a domain StockMovement to a model StockMovement
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		StockMovementID: d.StockMovementID,
		ProductID:       d.ProductID,
		MovementType:    models.MovementType(d.MovementType),
		ReferenceType:   d.ReferenceType,
		ReferenceID:     d.ReferenceID,
		Quantity:        d.Quantity,
		CostPrice:       d.CostPrice,
		BalanceBefore:   d.BalanceBefore,
		BalanceAfter:    d.BalanceAfter,
		MovementDate:    d.MovementDate,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		StockMovementID: m.StockMovementID,
		ProductID:       m.ProductID,
		MovementType:    domain.MovementType(m.MovementType),
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		Quantity:        m.Quantity,
		CostPrice:       m.CostPrice,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		MovementDate:    m.MovementDate,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockMovementSlice converts a slice of model StockMovements to domain StockMovements
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}
