package services

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
)

// InventoryMovementSvcFacade applies and lists stock movements.
type InventoryMovementSvcFacade interface {
	// ApplyMovement records the movement and updates product stock atomically.
	ApplyMovement(ctx context.Context, actor domain.Actor, productID string, req dto.ApplyMovementRequest) (*domain.InventoryMovement, error)

	ListMovements(ctx context.Context, actor domain.Actor, productID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}
