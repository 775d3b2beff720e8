package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MovementCursor is the keyset position after which a movement page starts.
type MovementCursor struct {
	CreatedAt  time.Time
	MovementID string
}

// MovementReader defines read operations for the inventory ledger
type MovementReader interface {
	// ListMovementsByProduct returns movements newest first, starting after the cursor when given.
	ListMovementsByProduct(ctx context.Context, productID string, limit int, after *MovementCursor) ([]domain.InventoryMovement, error)
}

// MovementWriter appends ledger entries inside a caller-owned transaction.
type MovementWriter interface {
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.InventoryMovement) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
