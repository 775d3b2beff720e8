package dto

import (
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}

// ConvertParams are the query parameters of a one-off conversion.
type ConvertParams struct {
	Amount string `form:"amount" binding:"required,numeric"`
	From   string          `form:"from" binding:"required,len=3"`
	To     string          `form:"to" binding:"required,len=3"`
}

// MoneyResponse is the wire shape of domain.Money.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ToMoneyResponse renders m with two fixed decimals.
func ToMoneyResponse(m domain.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount().StringFixed(domain.MoneyScale), Currency: m.Currency()}
}

// ConvertResponse carries both sides of a conversion.
type ConvertResponse struct {
	Source MoneyResponse `json:"source"`
	Result MoneyResponse `json:"result"`
}
