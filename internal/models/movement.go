package models

import "time"

// InventoryMovement is an append-only ledger row.
type InventoryMovement struct {
	MovementID   string    `db:"movement_id"`
	ProductID    string    `db:"product_id"`
	CompanyID    string    `db:"company_id"`
	MovementType string    `db:"movement_type"`
	Quantity     int       `db:"quantity"`
	StockAfter   int       `db:"stock_after"`
	Comment      *string   `db:"comment"`
	CreatedAt    time.Time `db:"created_at"`
	CreatedBy    string    `db:"created_by"`
}
