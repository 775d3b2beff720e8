package rates

import (
	"context"
	"time"

	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
)

// CachedRateSource memoizes successful lookups of another source for ttl.
type CachedRateSource struct {
	next  portssvc.RateSource
	cache *expirable.LRU[string, decimal.Decimal]
}

func NewCachedRateSource(next portssvc.RateSource, size int, ttl time.Duration) *CachedRateSource {
	if size <= 0 {
		size = 256
	}
	return &CachedRateSource{
		next:  next,
		cache: expirable.NewLRU[string, decimal.Decimal](size, nil, ttl),
	}
}

var _ portssvc.RateSource = (*CachedRateSource)(nil)

// GetRate serves from cache; failures are never cached.
func (s *CachedRateSource) GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	key := fromCode + ":" + toCode
	if rate, ok := s.cache.Get(key); ok {
		return rate, nil
	}
	rate, err := s.next.GetRate(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	s.cache.Add(key, rate)
	return rate, nil
}
