package domain

import (
	"errors"
	"fmt"
	"math"
)

// MaxStock is the largest stock level a product can hold.
const MaxStock = math.MaxInt32

var (
	ErrStockBelowZero      = errors.New("stock cannot go below 0")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrUnknownMovementType = errors.New("unknown movement type")
)

// CompanyProduct is a catalog entry owned by exactly one company.
type CompanyProduct struct {
	ProductID           string `json:"productID"`
	CompanyID           string `json:"companyID"`
	Name                string `json:"name"`
	EAN                 string `json:"ean"`
	Description         string `json:"description"`
	Price               Money  `json:"price"`
	Stock               int    `json:"stock"`
	IsAvailableForOrder bool   `json:"isAvailableForOrder"`
	IsDeleted           bool   `json:"-"`
	AuditFields
}

// ApplyMovement mutates Stock according to the movement type.
// The product is left untouched when an error is returned.
func (p *CompanyProduct) ApplyMovement(movementType MovementType, quantity int) error {
	next, err := NextStock(p.Stock, movementType, quantity)
	if err != nil {
		return err
	}
	p.Stock = next
	return nil
}

// NextStock computes the stock level after a movement without mutating anything.
func NextStock(current int, movementType MovementType, quantity int) (int, error) {
	switch movementType {
	case MovementInbound:
		if quantity <= 0 {
			return current, fmt.Errorf("%w: inbound quantity must be positive", ErrInvalidQuantity)
		}
		if quantity > MaxStock-current {
			return current, fmt.Errorf("%w: stock cannot exceed %d", ErrInvalidQuantity, MaxStock)
		}
		return current + quantity, nil
	case MovementOutbound:
		if quantity <= 0 {
			return current, fmt.Errorf("%w: outbound quantity must be positive", ErrInvalidQuantity)
		}
		if current < quantity {
			return current, ErrStockBelowZero
		}
		return current - quantity, nil
	case MovementAdjustment:
		if quantity < 0 {
			return current, ErrStockBelowZero
		}
		if quantity > MaxStock {
			return current, fmt.Errorf("%w: stock cannot exceed %d", ErrInvalidQuantity, MaxStock)
		}
		return quantity, nil
	default:
		return current, fmt.Errorf("%w: %q", ErrUnknownMovementType, movementType)
	}
}
