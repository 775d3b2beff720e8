package dto

import (
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
)

// ApplyMovementRequest records a stock movement for a product.
type ApplyMovementRequest struct {
	Type     domain.MovementType `json:"type" binding:"required,oneof=INBOUND OUTBOUND ADJUSTMENT"`
	Quantity int                 `json:"quantity" binding:"min=0,max=2147483647"`
	Comment  *string             `json:"comment" binding:"omitempty,max=500"`
}

// ListMovementsParams defines query parameters for paging the ledger.
type ListMovementsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// MovementResponse defines the movement data returned by the API.
type MovementResponse struct {
	MovementID string              `json:"movementID"`
	ProductID  string              `json:"productID"`
	Type       domain.MovementType `json:"type"`
	Quantity   int                 `json:"quantity"`
	StockAfter int                 `json:"stockAfter"`
	Comment    *string             `json:"comment,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	CreatedBy  string              `json:"createdBy"`
}

// ListMovementsResponse is one page of the ledger.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToMovementResponse converts a domain.InventoryMovement to MovementResponse DTO
func ToMovementResponse(m *domain.InventoryMovement) MovementResponse {
	return MovementResponse{
		MovementID: m.MovementID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		StockAfter: m.StockAfter,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}
