package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
)

// OrderListFilter narrows ListOrdersByCompany.
type OrderListFilter struct {
	CompanyID string
	Party     domain.OrderParty
	Status    *domain.OrderStatus
	Limit     int
	Offset    int
}

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID returns the order with its lines, product details and stored unit prices.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByCompany returns order headers without lines, newest first.
	ListOrdersByCompany(ctx context.Context, filter OrderListFilter) ([]domain.Order, error)
}

// OrderWriter defines atomic write operations for order data
type OrderWriter interface {
	// SaveOrder inserts the order and all of its lines atomically.
	SaveOrder(ctx context.Context, order domain.Order) error

	// SaveOrderChanges deletes removed lines, writes every line of order.Lines with its unit price
	// and stores the new total atomically.
	// order.Version is the version the changes were computed against; a mismatch yields apperrors.ErrConflict.
	SaveOrderChanges(ctx context.Context, order domain.Order, changes domain.LineChanges) error

	// UpdateOrderStatus moves the order from one status to another, guarded by expectedVersion.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, expectedVersion int64, userID string, now time.Time) error

	// DeleteOrder removes a pending order and its lines, guarded by expectedVersion.
	DeleteOrder(ctx context.Context, orderID string, expectedVersion int64) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
