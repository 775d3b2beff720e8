// Package rates holds the RateSource adapters used by currency conversion.
package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// DatabaseRateSource serves rates maintained through the exchange-rates API.
type DatabaseRateSource struct {
	rates portsrepo.ExchangeRateReader
}

func NewDatabaseRateSource(rates portsrepo.ExchangeRateReader) *DatabaseRateSource {
	return &DatabaseRateSource{rates: rates}
}

var _ portssvc.RateSource = (*DatabaseRateSource)(nil)

// GetRate returns the latest stored rate. The repository falls back to the inverse pair.
func (s *DatabaseRateSource) GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	rate, err := s.rates.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no stored rate for %s to %s", apperrors.ErrRateUnavailable, fromCode, toCode)
		}
		return decimal.Zero, fmt.Errorf("failed to load exchange rate: %w", err)
	}
	return rate.Rate, nil
}
