package mapping

import (
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
)

func ToModelMovement(d domain.InventoryMovement) models.InventoryMovement {
	return models.InventoryMovement{
		MovementID:   d.MovementID,
		ProductID:    d.ProductID,
		CompanyID:    d.CompanyID,
		MovementType: string(d.Type),
		Quantity:     d.Quantity,
		StockAfter:   d.StockAfter,
		Comment:      d.Comment,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

func ToDomainMovement(m models.InventoryMovement) domain.InventoryMovement {
	return domain.InventoryMovement{
		MovementID: m.MovementID,
		ProductID:  m.ProductID,
		CompanyID:  m.CompanyID,
		Type:       domain.MovementType(m.MovementType),
		Quantity:   m.Quantity,
		StockAfter: m.StockAfter,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}
