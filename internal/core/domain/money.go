package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyCode is the currency used when neither the request nor the order names one.
const DefaultCurrencyCode = "PLN"

// MoneyScale is the number of decimal places kept by monetary amounts.
const MoneyScale = 2

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidCurrencyCode = errors.New("currency code must be a 3-letter ISO code")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
)

// Money is an immutable amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NormalizeCurrencyCode trims and upper-cases code and checks it is three ASCII letters.
func NormalizeCurrencyCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
		}
	}
	return c, nil
}

// SameCurrency reports whether a and b name the same currency, ignoring case and surrounding space.
func SameCurrency(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NewMoney validates amount and currency. Amounts must be strictly positive.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	code, err := NormalizeCurrencyCode(currency)
	if err != nil {
		return Money{}, err
	}
	if !amount.IsPositive() {
		return Money{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}
	return Money{amount: amount, currency: code}, nil
}

// ZeroMoney is the additive identity for totals in currency.
func ZeroMoney(currency string) (Money, error) {
	code, err := NormalizeCurrencyCode(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: decimal.Zero.Round(MoneyScale), currency: code}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(amount string, currency string) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	m, err := NewMoney(d, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MulInt multiplies the amount by a non-negative integer quantity.
func (m Money) MulInt(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty))), currency: m.currency}
}

// Round2 rounds half away from zero to MoneyScale places.
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(MoneyScale), currency: m.currency}
}

// Equal compares amount numerically and currency exactly.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale) + " " + m.currency
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.StringFixed(MoneyScale), Currency: m.currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %w", raw.Amount, err)
	}
	code, err := NormalizeCurrencyCode(raw.Currency)
	if err != nil {
		return err
	}
	m.amount = amount
	m.currency = code
	return nil
}

// RestoreMoney rebuilds a stored value without the positivity check; zero totals are legal in storage.
func RestoreMoney(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: strings.ToUpper(strings.TrimSpace(currency))}
}
