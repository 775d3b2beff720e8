package models

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "PLN")
	Symbol       string `db:"symbol"`        // e.g., "zł"
	Name         string `db:"name"`          // e.g., "Polish Zloty"
	AuditFields
}
