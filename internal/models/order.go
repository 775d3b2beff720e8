package models

import (
	"github.com/shopspring/decimal"
)

// Order is the order header row.
type Order struct {
	OrderID              string          `db:"order_id"`
	SellerCompanyID      string          `db:"seller_company_id"`
	BuyerCompanyID       string          `db:"buyer_company_id"`
	Status               string          `db:"status"`
	UserNameWhoMadeOrder string          `db:"user_name_who_made_order"`
	TotalPrice           decimal.Decimal `db:"total_price"`
	CurrencyCode         string          `db:"currency_code"`
	AuditFields
}

// OrderLine is keyed by (order_id, product_id). Name and EAN come from a join on read;
// the unit price is stored and shares the order header's currency.
type OrderLine struct {
	OrderID       string          `db:"order_id"`
	ProductID     string          `db:"product_id"`
	Quantity      int             `db:"quantity"`
	ProductName   string          `db:"name"`
	ProductEAN    string          `db:"ean"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	PriceCurrency string          `db:"currency_code"`
}
