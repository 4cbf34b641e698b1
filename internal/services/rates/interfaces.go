// Package rates is the cached abstraction over the external FX rate
// provider. It is the sole source of truth for what one unit of a currency
// is worth in another. All rate arithmetic uses decimals; floats never
// touch money.
package rates

import (
	"context"

	"kudi/internal/models"

	"github.com/shopspring/decimal"
)

// Service exposes rate lookup and pure conversion.
type Service interface {
	// GetRate returns the rate for one unit of from in to. Same-currency
	// pairs return 1 without a cache or provider hit. A provider failure
	// surfaces as ErrRateUnavailable, never as a stale or default rate.
	GetRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error)

	// Convert returns amount * rate rounded to 2 decimal places, plus the
	// rate used. Amounts here are in major units; the wallet engine owns
	// the minor-unit boundary.
	Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (decimal.Decimal, decimal.Decimal, error)

	// ListRates fetches the full table for a base currency and filters it
	// to the supported set. Display only; bypasses the pair cache.
	ListRates(ctx context.Context, base models.Currency) (map[models.Currency]decimal.Decimal, error)
}

// Provider is the external market-data source.
type Provider interface {
	PairRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error)
	LatestRates(ctx context.Context, base models.Currency) (map[string]decimal.Decimal, error)
}

// Cache stores pair rates with TTL-judged staleness. Implementations are
// expected to be tolerant of races: a duplicated refresh fetch is harmless.
type Cache interface {
	Get(ctx context.Context, pair string) (decimal.Decimal, bool)
	Set(ctx context.Context, pair string, rate decimal.Decimal)
}
