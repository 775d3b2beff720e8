package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyProduct is a catalog row. (company_id, ean) is unique among non-deleted rows.
type CompanyProduct struct {
	ProductID           string          `db:"product_id"`
	CompanyID           string          `db:"company_id"`
	Name                string          `db:"name"`
	EAN                 string          `db:"ean"`
	Description         string          `db:"description"`
	Price               decimal.Decimal `db:"price"`
	CurrencyCode        string          `db:"currency_code"`
	Stock               int             `db:"stock"`
	IsAvailableForOrder bool            `db:"is_available_for_order"`
	IsDeleted           bool            `db:"is_deleted"`
	DeletedAt           *time.Time      `db:"deleted_at"`
	AuditFields
}
