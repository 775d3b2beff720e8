package dto

import (
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
)

// OrderLineRequest is one requested (EAN, quantity) pair.
type OrderLineRequest struct {
	EAN      string `json:"ean" binding:"required,ean"`
	Quantity int    `json:"quantity" binding:"min=0,max=2147483647"`
}

// CreateOrderRequest places an order against a seller's catalog.
type CreateOrderRequest struct {
	SellerNIP    string             `json:"sellerNip" binding:"required,nip"`
	Lines        []OrderLineRequest `json:"lines" binding:"required,dive"`
	CurrencyCode string             `json:"currencyCode" binding:"omitempty,len=3"`
}

// UpdateOrderRequest is a sparse merge of lines; quantity 0 removes a line.
type UpdateOrderRequest struct {
	Lines        []OrderLineRequest `json:"lines" binding:"required,dive"`
	CurrencyCode *string            `json:"currencyCode" binding:"omitempty,len=3"`
}

// ChangeOrderStatusRequest moves an order through its lifecycle.
type ChangeOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required,oneof=ACCEPTED REJECTED CANCELLED COMPLETED"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Role   string `form:"role,default=buyer" binding:"oneof=buyer seller"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED CANCELLED COMPLETED"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// OrderLineResponse defines an order line returned by the API.
type OrderLineResponse struct {
	ProductID   string        `json:"productID"`
	ProductName string        `json:"productName"`
	EAN         string        `json:"ean"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unitPrice"`
}

// OrderResponse defines the order data returned by the API.
type OrderResponse struct {
	OrderID              string              `json:"orderID"`
	SellerCompanyID      string              `json:"sellerCompanyID"`
	BuyerCompanyID       string              `json:"buyerCompanyID"`
	Status               domain.OrderStatus  `json:"status"`
	UserNameWhoMadeOrder string              `json:"userNameWhoMadeOrder"`
	TotalPrice           MoneyResponse       `json:"totalPrice"`
	Lines                []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	LastUpdatedAt        time.Time           `json:"lastUpdatedAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			EAN:         l.ProductEAN,
			Quantity:    l.Quantity,
			UnitPrice:   ToMoneyResponse(l.UnitPrice),
		}
	}
	return OrderResponse{
		OrderID:              o.OrderID,
		SellerCompanyID:      o.SellerCompanyID,
		BuyerCompanyID:       o.BuyerCompanyID,
		Status:               o.Status,
		UserNameWhoMadeOrder: o.UserNameWhoMadeOrder,
		TotalPrice:           ToMoneyResponse(o.TotalPrice),
		Lines:                lines,
		CreatedAt:            o.CreatedAt,
		LastUpdatedAt:        o.LastUpdatedAt,
	}
}

// ToListOrderResponse converts a slice of orders.
func ToListOrderResponse(orders []domain.Order) []OrderResponse {
	res := make([]OrderResponse, len(orders))
	for i := range orders {
		res[i] = ToOrderResponse(&orders[i])
	}
	return res
}
