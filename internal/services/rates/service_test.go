package rates

import (
	"context"
	"testing"
	"time"

	apperr "kudi/internal/errors"
	"kudi/internal/logger"
	"kudi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) PairRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProvider) LatestRates(ctx context.Context, base models.Currency) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func newTestCache(now *time.Time) *MemoryCache {
	cache := NewMemoryCache(DefaultCacheTTL)
	cache.now = func() time.Time { return *now }
	return cache
}

func TestGetRate_SameCurrency(t *testing.T) {
	provider := new(MockProvider)
	now := time.Now()
	svc := NewService(provider, newTestCache(&now), logger.New("error"))

	rate, err := svc.GetRate(context.Background(), models.CurrencyUSD, models.CurrencyUSD)
	assert.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))

	provider.AssertNotCalled(t, "PairRate")
}

func TestGetRate_CachesWithinTTL(t *testing.T) {
	provider := new(MockProvider)
	now := time.Now()
	svc := NewService(provider, newTestCache(&now), logger.New("error"))

	quoted := decimal.RequireFromString("1520.75")
	provider.On("PairRate", mock.Anything, models.CurrencyUSD, models.CurrencyNGN).
		Return(quoted, nil).Once()

	first, err := svc.GetRate(context.Background(), models.CurrencyUSD, models.CurrencyNGN)
	assert.NoError(t, err)
	assert.True(t, first.Equal(quoted))

	// 4m59s later the cached rate is still fresh: no second fetch.
	now = now.Add(4*time.Minute + 59*time.Second)
	second, err := svc.GetRate(context.Background(), models.CurrencyUSD, models.CurrencyNGN)
	assert.NoError(t, err)
	assert.True(t, second.Equal(quoted))

	provider.AssertExpectations(t)
}

func TestGetRate_RefetchesAfterTTL(t *testing.T) {
	provider := new(MockProvider)
	now := time.Now()
	svc := NewService(provider, newTestCache(&now), logger.New("error"))

	provider.On("PairRate", mock.Anything, models.CurrencyUSD, models.CurrencyNGN).
		Return(decimal.RequireFromString("1520.75"), nil).Twice()

	_, err := svc.GetRate(context.Background(), models.CurrencyUSD, models.CurrencyNGN)
	assert.NoError(t, err)

	now = now.Add(5*time.Minute + 1*time.Second)
	_, err = svc.GetRate(context.Background(), models.CurrencyUSD, models.CurrencyNGN)
	assert.NoError(t, err)

	provider.AssertExpectations(t)
}

func TestGetRate_ProviderFailure(t *testing.T) {
	provider := new(MockProvider)
	now := time.Now()
	svc := NewService(provider, newTestCache(&now), logger.New("error"))

	provider.On("PairRate", mock.Anything, models.CurrencyNGN, models.CurrencyUSD).
		Return(decimal.Zero, assert.AnError)

	_, err := svc.GetRate(context.Background(), models.CurrencyNGN, models.CurrencyUSD)
	assert.Equal(t, apperr.ErrRateUnavailable, err)
}

func TestConvert_RoundsToTwoPlaces(t *testing.T) {
	provider := new(MockProvider)
	now := time.Now()
	svc := NewService(provider, newTestCache(&now), logger.New("error"))

	provider.On("PairRate", mock.Anything, models.CurrencyNGN, models.CurrencyUSD).
		Return(decimal.RequireFromString("0.0007"), nil).Once()

	converted, rate, err := svc.Convert(context.Background(), decimal.NewFromInt(500), models.CurrencyNGN, models.CurrencyUSD)
	assert.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.0007")))
	assert.True(t, converted.Equal(decimal.RequireFromString("0.35")), "got %s", converted)
}

func TestListRates_FiltersToSupportedSet(t *testing.T) {
	provider := new(MockProvider)
	now := time.Now()
	svc := NewService(provider, newTestCache(&now), logger.New("error"))

	provider.On("LatestRates", mock.Anything, models.CurrencyNGN).
		Return(map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("0.00065"),
			"GBP": decimal.RequireFromString("0.00051"),
			"JPY": decimal.RequireFromString("0.098"),
		}, nil).Twice()

	table, err := svc.ListRates(context.Background(), models.CurrencyNGN)
	assert.NoError(t, err)
	assert.Len(t, table, 2)
	assert.Contains(t, table, models.CurrencyUSD)
	assert.Contains(t, table, models.CurrencyGBP)
	assert.NotContains(t, table, models.Currency("JPY"))

	// Display lookups bypass the pair cache: a second call hits the
	// provider again.
	_, err = svc.ListRates(context.Background(), models.CurrencyNGN)
	assert.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestListRates_ProviderFailure(t *testing.T) {
	provider := new(MockProvider)
	now := time.Now()
	svc := NewService(provider, newTestCache(&now), logger.New("error"))

	provider.On("LatestRates", mock.Anything, models.CurrencyUSD).
		Return(nil, assert.AnError)

	_, err := svc.ListRates(context.Background(), models.CurrencyUSD)
	assert.Equal(t, apperr.ErrRateUnavailable, err)
}
