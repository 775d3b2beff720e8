package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
	"github.com/SscSPs/b2b_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	orderColumns = `order_id, seller_company_id, buyer_company_id, status, user_name_who_made_order,
		total_price, currency_code, created_at, created_by, last_updated_at, last_updated_by, version`

	// Lines join their product without the deleted filter so historic orders stay readable.
	// Unit prices are the ones stored at the last write, in the order's currency.
	orderLinesQuery = `
		SELECT ol.order_id, ol.product_id, ol.quantity, p.name, p.ean, ol.unit_price, o.currency_code
		FROM order_lines ol
		JOIN orders o ON o.order_id = ol.order_id
		JOIN company_products p ON p.product_id = ol.product_id
		WHERE ol.order_id = $1
		ORDER BY ol.line_no`

	upsertOrderLine = `
		INSERT INTO order_lines (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id, product_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price`
)

// PgxOrderRepository persists orders and their lines. Every write runs in one transaction.
type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, mapError(err, "failed to query order")
	}
	modelOrder, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Order])
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("order %s not found", orderID))
	}

	lineRows, err := r.Pool.Query(ctx, orderLinesQuery, orderID)
	if err != nil {
		return nil, mapError(err, "failed to query order lines")
	}
	modelLines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.OrderLine])
	if err != nil {
		return nil, mapError(err, "failed to scan order lines")
	}

	order := mapping.ToDomainOrder(modelOrder, modelLines)
	return &order, nil
}

func (r *PgxOrderRepository) ListOrdersByCompany(ctx context.Context, filter portsrepo.OrderListFilter) ([]domain.Order, error) {
	args := []any{filter.CompanyID}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE `
	switch filter.Party {
	case domain.PartyBuyer:
		query += `buyer_company_id = $1`
	case domain.PartySeller:
		query += `seller_company_id = $1`
	default:
		query += `(buyer_company_id = $1 OR seller_company_id = $1)`
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += ` ORDER BY created_at DESC, order_id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list orders")
	}
	modelOrders, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Order])
	if err != nil {
		return nil, mapError(err, "failed to scan orders")
	}
	orders := make([]domain.Order, len(modelOrders))
	for i, m := range modelOrders {
		orders[i] = mapping.ToDomainOrder(m, nil)
	}
	return orders, nil
}

// SaveOrder inserts the header and all lines in one transaction.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			m.OrderID, m.SellerCompanyID, m.BuyerCompanyID, m.Status, m.UserNameWhoMadeOrder,
			m.TotalPrice, m.CurrencyCode, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		)
		if err != nil {
			return mapError(err, "failed to insert order")
		}
		return r.upsertLines(ctx, tx, order.OrderID, order.Lines)
	})
}

// SaveOrderChanges bumps the header version first so a concurrent writer fails before any line is touched.
// Every resulting line is rewritten because repricing can change lines whose quantity did not.
func (r *PgxOrderRepository) SaveOrderChanges(ctx context.Context, order domain.Order, changes domain.LineChanges) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE orders SET
				total_price = $1, currency_code = $2, last_updated_at = $3, last_updated_by = $4,
				version = version + 1
			WHERE order_id = $5 AND version = $6 AND status = $7`,
			order.TotalPrice.Amount(), order.TotalPrice.Currency(), order.LastUpdatedAt, order.LastUpdatedBy,
			order.OrderID, order.Version, string(domain.OrderPending),
		)
		if err != nil {
			return mapError(err, "failed to update order")
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("order %s changed since it was read: %w", order.OrderID, apperrors.ErrConflict)
		}

		if len(changes.Deletes) > 0 {
			_, err = tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1 AND product_id = ANY($2)`,
				order.OrderID, changes.Deletes)
			if err != nil {
				return mapError(err, "failed to delete order lines")
			}
		}
		return r.upsertLines(ctx, tx, order.OrderID, order.Lines)
	})
}

func (r *PgxOrderRepository) upsertLines(ctx context.Context, tx pgx.Tx, orderID string, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(upsertOrderLine, orderID, line.ProductID, line.Quantity, line.UnitPrice.Amount())
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapError(err, "failed to write order line")
		}
	}
	return mapError(results.Close(), "failed to write order lines")
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, expectedVersion int64, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE orders SET
			status = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE order_id = $4 AND status = $5 AND version = $6`,
		string(to), now, userID, orderID, string(from), expectedVersion,
	)
	if err != nil {
		return mapError(err, "failed to update order status")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s changed since it was read: %w", orderID, apperrors.ErrConflict)
	}
	return nil
}

// DeleteOrder removes a pending order. Lines go with it through ON DELETE CASCADE.
func (r *PgxOrderRepository) DeleteOrder(ctx context.Context, orderID string, expectedVersion int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE order_id = $1 AND version = $2 AND status = $3`,
		orderID, expectedVersion, string(domain.OrderPending))
	if err != nil {
		return mapError(err, "failed to delete order")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s changed since it was read: %w", orderID, apperrors.ErrConflict)
	}
	return nil
}
