package domain

import (
	"errors"
	"fmt"
	"sort"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAccepted  OrderStatus = "ACCEPTED"
	OrderRejected  OrderStatus = "REJECTED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderCompleted OrderStatus = "COMPLETED"
)

// OrderParty identifies which side of an order a company is on.
type OrderParty string

const (
	PartyBuyer  OrderParty = "BUYER"
	PartySeller OrderParty = "SELLER"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrWrongOrderParty         = errors.New("order party not allowed to perform this transition")
	ErrUnknownOrderStatus      = errors.New("unknown order status")
)

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderRejected, OrderCancelled, OrderCompleted:
		return true
	default:
		return false
	}
}

// IsEditable reports whether lines and total may still change.
func (s OrderStatus) IsEditable() bool {
	return s == OrderPending
}

// Order is the aggregate root of a purchase between two companies.
type Order struct {
	OrderID              string      `json:"orderID"`
	SellerCompanyID      string      `json:"sellerCompanyID"`
	BuyerCompanyID       string      `json:"buyerCompanyID"`
	Status               OrderStatus `json:"status"`
	UserNameWhoMadeOrder string      `json:"userNameWhoMadeOrder"`
	TotalPrice           Money       `json:"totalPrice"`
	Lines                []OrderLine `json:"lines"`
	AuditFields
}

// OrderLine is owned by its order; identity is (OrderID, ProductID).
// UnitPrice is in the order currency, fixed when the order was last priced.
// ProductName and ProductEAN are resolved when the line is read.
type OrderLine struct {
	OrderID     string `json:"orderID"`
	ProductID   string `json:"productID"`
	Quantity    int    `json:"quantity"`
	ProductName string `json:"productName,omitempty"`
	ProductEAN  string `json:"productEAN,omitempty"`
	UnitPrice   Money  `json:"unitPrice"`
}

// PartyOf returns the side companyID plays in the order.
func (o Order) PartyOf(companyID string) (OrderParty, bool) {
	switch companyID {
	case "":
		return "", false
	case o.BuyerCompanyID:
		return PartyBuyer, true
	case o.SellerCompanyID:
		return PartySeller, true
	default:
		return "", false
	}
}

// TransitionTo moves the order to next on behalf of party.
// Sellers accept or reject pending orders; buyers cancel or complete accepted ones.
func (o *Order) TransitionTo(next OrderStatus, party OrderParty) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownOrderStatus, next)
	}
	var allowedParty OrderParty
	switch o.Status {
	case OrderPending:
		switch next {
		case OrderAccepted, OrderRejected:
			allowedParty = PartySeller
		default:
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, next)
		}
	case OrderAccepted:
		switch next {
		case OrderCancelled, OrderCompleted:
			allowedParty = PartyBuyer
		default:
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, next)
		}
	case OrderRejected, OrderCancelled, OrderCompleted:
		return fmt.Errorf("%w: %s is final", ErrInvalidStatusTransition, o.Status)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOrderStatus, o.Status)
	}
	if party != allowedParty {
		return fmt.Errorf("%w: %s cannot move order to %s", ErrWrongOrderParty, party, next)
	}
	o.Status = next
	return nil
}

// LineChanges is the outcome of reconciling requested quantities against current lines.
type LineChanges struct {
	Upserts []OrderLine // New lines and lines whose quantity changed
	Deletes []string    // Product IDs whose line is removed
	Result  []OrderLine // Line set after the merge
}

// IsEmpty reports whether reconciliation changed nothing.
func (c LineChanges) IsEmpty() bool {
	return len(c.Upserts) == 0 && len(c.Deletes) == 0
}

// ReconcileLines merges requested (productID -> quantity) into current.
// A zero quantity removes the line; products not mentioned keep their line.
func ReconcileLines(orderID string, current []OrderLine, requested map[string]int) LineChanges {
	byProduct := make(map[string]OrderLine, len(current))
	for _, line := range current {
		byProduct[line.ProductID] = line
	}

	productIDs := make([]string, 0, len(requested))
	for productID := range requested {
		productIDs = append(productIDs, productID)
	}
	sort.Strings(productIDs)

	var changes LineChanges
	for _, productID := range productIDs {
		qty := requested[productID]
		existing, ok := byProduct[productID]
		switch {
		case qty == 0:
			if ok {
				delete(byProduct, productID)
				changes.Deletes = append(changes.Deletes, productID)
			}
		case ok:
			if existing.Quantity != qty {
				existing.Quantity = qty
				byProduct[productID] = existing
				changes.Upserts = append(changes.Upserts, existing)
			}
		default:
			line := OrderLine{OrderID: orderID, ProductID: productID, Quantity: qty}
			byProduct[productID] = line
			changes.Upserts = append(changes.Upserts, line)
		}
	}

	// Keep surviving lines in their original order, then append new ones.
	changes.Result = make([]OrderLine, 0, len(byProduct))
	seen := make(map[string]bool, len(byProduct))
	for _, line := range current {
		if updated, ok := byProduct[line.ProductID]; ok {
			changes.Result = append(changes.Result, updated)
			seen[line.ProductID] = true
		}
	}
	for _, productID := range productIDs {
		if line, ok := byProduct[productID]; ok && !seen[productID] {
			changes.Result = append(changes.Result, line)
		}
	}
	return changes
}
