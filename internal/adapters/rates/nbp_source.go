package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// nbpBaseCurrency is quoted at mid = 1 in every NBP table.
const nbpBaseCurrency = "PLN"

// NBPRateSource reads table A mid rates from the National Bank of Poland API.
type NBPRateSource struct {
	baseURL string
	client  *http.Client
}

// NewNBPRateSource creates a source against baseURL, e.g. "https://api.nbp.pl/api".
func NewNBPRateSource(baseURL string, timeout time.Duration) *NBPRateSource {
	return &NBPRateSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var _ portssvc.RateSource = (*NBPRateSource)(nil)

type nbpRatesResponse struct {
	Code  string `json:"code"`
	Rates []struct {
		EffectiveDate string          `json:"effectiveDate"`
		Mid           decimal.Decimal `json:"mid"`
	} `json:"rates"`
}

// GetRate derives the cross rate mid(from) / mid(to).
func (s *NBPRateSource) GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	from, err := s.mid(ctx, fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := s.mid(ctx, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	if !to.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: NBP returned non-positive mid for %s", apperrors.ErrRateUnavailable, toCode)
	}
	return from.Div(to), nil
}

func (s *NBPRateSource) mid(ctx context.Context, code string) (decimal.Decimal, error) {
	code = strings.ToUpper(code)
	if code == nbpBaseCurrency {
		return decimal.NewFromInt(1), nil
	}

	endpoint := fmt.Sprintf("%s/exchangerates/rates/A/%s/?format=json", s.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build NBP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: NBP request for %s failed: %v", apperrors.ErrRateUnavailable, code, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return decimal.Zero, fmt.Errorf("%w: NBP does not quote %s", apperrors.ErrRateUnavailable, code)
	case resp.StatusCode != http.StatusOK:
		return decimal.Zero, fmt.Errorf("%w: NBP answered %d for %s", apperrors.ErrRateUnavailable, resp.StatusCode, code)
	}

	var body nbpRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed NBP response for %s: %v", apperrors.ErrRateUnavailable, code, err)
	}
	if len(body.Rates) == 0 {
		return decimal.Zero, fmt.Errorf("%w: NBP returned no rates for %s", apperrors.ErrRateUnavailable, code)
	}
	return body.Rates[len(body.Rates)-1].Mid, nil
}
