package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/pkg/metrics"
)

type currencyConverter struct {
	BaseService
	rates      portssvc.RateSource
	sourceName string
	metrics    *metrics.DomainMetrics
}

// ConverterOption configures the currency converter
type ConverterOption func(*currencyConverter)

// WithConverterMetrics counts rate lookups under the given source label.
func WithConverterMetrics(m *metrics.DomainMetrics, sourceName string) ConverterOption {
	return func(c *currencyConverter) {
		c.metrics = m
		c.sourceName = sourceName
	}
}

// NewCurrencyConverter creates a converter backed by rates.
func NewCurrencyConverter(rates portssvc.RateSource, options ...ConverterOption) portssvc.CurrencyConverterSvc {
	c := &currencyConverter{rates: rates, sourceName: "default"}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.CurrencyConverterSvc = (*currencyConverter)(nil)

// Convert returns source unchanged for its own currency and never consults the rate source in that case.
func (c *currencyConverter) Convert(ctx context.Context, source domain.Money, targetCurrencyCode string) (domain.Money, error) {
	if source.Currency() == "" {
		return domain.Money{}, fmt.Errorf("%w: source currency is empty", apperrors.ErrValidation)
	}
	target, err := domain.NormalizeCurrencyCode(targetCurrencyCode)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if domain.SameCurrency(source.Currency(), target) {
		return source, nil
	}

	rate, err := c.rates.GetRate(ctx, source.Currency(), target)
	c.observe(err)
	if err != nil {
		c.LogError(ctx, err, "Exchange rate lookup failed",
			slog.String("from", source.Currency()),
			slog.String("to", target))
		return domain.Money{}, fmt.Errorf("%w: %s to %s: %v", apperrors.ErrRateUnavailable, source.Currency(), target, err)
	}
	if !rate.IsPositive() {
		return domain.Money{}, fmt.Errorf("%w: non-positive rate %s for %s to %s", apperrors.ErrRateUnavailable, rate.String(), source.Currency(), target)
	}

	converted, err := domain.NewMoney(source.Amount().Mul(rate).Round(domain.MoneyScale), target)
	if err != nil {
		// A positive amount can round down to zero at very small rates.
		return domain.Money{}, fmt.Errorf("%w: converted amount is not representable: %w", apperrors.ErrRateUnavailable, err)
	}
	return converted, nil
}

func (c *currencyConverter) observe(err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RateLookups.WithLabelValues(c.sourceName, metrics.Result(err)).Inc()
}
