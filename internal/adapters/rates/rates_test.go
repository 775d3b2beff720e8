package rates_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/adapters/rates"
	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nbpServer(t *testing.T, mids map[string]string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/exchangerates/rates/A/{code}/", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		code := r.PathValue("code")
		mid, ok := mids[code]
		if !ok {
			http.Error(w, "404 NotFound - Not Found - Brak danych", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"table":"A","currency":"x","code":%q,"rates":[{"no":"200/A/NBP/2026","effectiveDate":"2026-10-16","mid":%s}]}`, code, mid)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNBPRateSource_CrossRate(t *testing.T) {
	srv := nbpServer(t, map[string]string{"USD": "3.8000", "EUR": "4.2750"}, nil)
	source := rates.NewNBPRateSource(srv.URL+"/", time.Second)

	tests := []struct {
		from, to string
		want     string
	}{
		{"USD", "PLN", "3.8"},
		{"PLN", "EUR", "0.2339181286549708"},
		{"EUR", "USD", "1.125"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"_"+tt.to, func(t *testing.T) {
			rate, err := source.GetRate(context.Background(), tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, rate.Equal(decimal.RequireFromString(tt.want)), "got %s", rate)
		})
	}
}

func TestNBPRateSource_UnknownCurrency(t *testing.T) {
	srv := nbpServer(t, map[string]string{"USD": "3.8"}, nil)
	source := rates.NewNBPRateSource(srv.URL, time.Second)

	_, err := source.GetRate(context.Background(), "XYZ", "USD")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestNBPRateSource_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := rates.NewNBPRateSource(srv.URL, time.Second).GetRate(context.Background(), "USD", "PLN")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

type countingSource struct {
	calls int
	rate  decimal.Decimal
	err   error
}

func (s *countingSource) GetRate(context.Context, string, string) (decimal.Decimal, error) {
	s.calls++
	return s.rate, s.err
}

func TestCachedRateSource(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{rate: decimal.RequireFromString("4.3")}
	cached := rates.NewCachedRateSource(inner, 8, time.Minute)

	for range 3 {
		rate, err := cached.GetRate(ctx, "EUR", "PLN")
		require.NoError(t, err)
		assert.True(t, rate.Equal(inner.rate))
	}
	assert.Equal(t, 1, inner.calls)

	_, err := cached.GetRate(ctx, "PLN", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "pairs are cached by direction")
}

func TestCachedRateSource_DoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{err: apperrors.ErrRateUnavailable}
	cached := rates.NewCachedRateSource(inner, 8, time.Minute)

	_, err := cached.GetRate(ctx, "USD", "JPY")
	require.Error(t, err)

	inner.err = nil
	inner.rate = decimal.RequireFromString("150")
	rate, err := cached.GetRate(ctx, "USD", "JPY")

	require.NoError(t, err)
	assert.True(t, rate.Equal(inner.rate))
	assert.Equal(t, 2, inner.calls)
}

func TestCachedRateSource_Expires(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{rate: decimal.NewFromInt(2)}
	cached := rates.NewCachedRateSource(inner, 8, 20*time.Millisecond)

	_, _ = cached.GetRate(ctx, "USD", "PLN")
	time.Sleep(60 * time.Millisecond)
	_, _ = cached.GetRate(ctx, "USD", "PLN")

	assert.Equal(t, 2, inner.calls)
}

type stubRates struct {
	rate *domain.ExchangeRate
	err  error
}

func (s stubRates) FindExchangeRate(context.Context, string, string) (*domain.ExchangeRate, error) {
	return s.rate, s.err
}

func TestDatabaseRateSource(t *testing.T) {
	ctx := context.Background()

	rate, err := rates.NewDatabaseRateSource(stubRates{rate: &domain.ExchangeRate{Rate: decimal.RequireFromString("0.92")}}).GetRate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.92", rate.String())

	_, err = rates.NewDatabaseRateSource(stubRates{err: apperrors.ErrNotFound}).GetRate(ctx, "USD", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	boom := errors.New("connection reset")
	_, err = rates.NewDatabaseRateSource(stubRates{err: boom}).GetRate(ctx, "USD", "EUR")
	assert.ErrorIs(t, err, boom)
}
