package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "PLN")
	Symbol       string `json:"symbol"`       // e.g., "zł"
	Name         string `json:"name"`         // e.g., "Polish Zloty"
	AuditFields
}

// ExchangeRate is the multiplier taking an amount in FromCurrencyCode to ToCurrencyCode.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
