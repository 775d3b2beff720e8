package services

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
)

// OrderReaderSvc defines read operations for orders visible to the actor's company
type OrderReaderSvc interface {
	GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Actor, params dto.ListOrdersParams) ([]domain.Order, error)
}

// OrderWriterSvc defines order mutations
type OrderWriterSvc interface {
	CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (*domain.Order, error)

	// UpdateOrder reconciles requested lines against a pending order and reprices it.
	UpdateOrder(ctx context.Context, actor domain.Actor, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error)

	ChangeOrderStatus(ctx context.Context, actor domain.Actor, orderID string, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor domain.Actor, orderID string) error
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
