package domain

import "time"

// MovementType is the kind of stock change recorded by an InventoryMovement.
type MovementType string

const (
	MovementInbound    MovementType = "INBOUND"
	MovementOutbound   MovementType = "OUTBOUND"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// MovementTypes lists every movement kind.
var MovementTypes = []MovementType{MovementInbound, MovementOutbound, MovementAdjustment}

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementInbound, MovementOutbound, MovementAdjustment:
		return true
	default:
		return false
	}
}

// InventoryMovement is an immutable stock ledger entry.
type InventoryMovement struct {
	MovementID string       `json:"movementID"`
	ProductID  string       `json:"productID"`
	CompanyID  string       `json:"companyID"`
	Type       MovementType `json:"type"`
	Quantity   int          `json:"quantity"`
	StockAfter int          `json:"stockAfter"`
	Comment    *string      `json:"comment,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	CreatedBy  string       `json:"createdBy"`
}
