package pgsql

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
	"github.com/SscSPs/b2b_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movementColumns = `movement_id, product_id, company_id, movement_type, quantity, stock_after, comment, created_at, created_by`

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) *PgxMovementRepository {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func (r *PgxMovementRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.InventoryMovement) error {
	m := mapping.ToModelMovement(movement)
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.MovementID, m.ProductID, m.CompanyID, m.MovementType, m.Quantity, m.StockAfter, m.Comment, m.CreatedAt, m.CreatedBy,
	)
	return mapError(err, "failed to save inventory movement")
}

// ListMovementsByProduct pages with a (created_at, movement_id) keyset, newest first.
func (r *PgxMovementRepository) ListMovementsByProduct(ctx context.Context, productID string, limit int, after *portsrepo.MovementCursor) ([]domain.InventoryMovement, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		rows, err = r.Pool.Query(ctx, `SELECT `+movementColumns+` FROM inventory_movements
			WHERE product_id = $1
			ORDER BY created_at DESC, movement_id DESC
			LIMIT $2`, productID, limit)
	} else {
		rows, err = r.Pool.Query(ctx, `SELECT `+movementColumns+` FROM inventory_movements
			WHERE product_id = $1 AND (created_at, movement_id) < ($2, $3)
			ORDER BY created_at DESC, movement_id DESC
			LIMIT $4`, productID, after.CreatedAt, after.MovementID, limit)
	}
	if err != nil {
		return nil, mapError(err, "failed to list inventory movements")
	}

	modelMovements, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InventoryMovement])
	if err != nil {
		return nil, mapError(err, "failed to scan inventory movements")
	}
	movements := make([]domain.InventoryMovement, len(modelMovements))
	for i, m := range modelMovements {
		movements[i] = mapping.ToDomainMovement(m)
	}
	return movements, nil
}
