package rates

import (
	"context"

	apperr "kudi/internal/errors"
	"kudi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type service struct {
	provider Provider
	cache    Cache
	logger   *logrus.Logger
}

// NewService wires the oracle over a provider and an explicitly owned
// cache instance.
func NewService(provider Provider, cache Cache, logger *logrus.Logger) Service {
	if provider == nil {
		panic("provider is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

func pairKey(from, to models.Currency) string {
	return string(from) + "_" + string(to)
}

func (s *service) GetRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	key := pairKey(from, to)
	if rate, ok := s.cache.Get(ctx, key); ok {
		return rate, nil
	}

	rate, err := s.provider.PairRate(ctx, from, to)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"from": from,
			"to":   to,
		}).Error("rate lookup failed")
		return decimal.Zero, apperr.ErrRateUnavailable
	}

	s.cache.Set(ctx, key, rate)
	return rate, nil
}

func (s *service) Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	converted := amount.Mul(rate).Round(2)
	return converted, rate, nil
}

func (s *service) ListRates(ctx context.Context, base models.Currency) (map[models.Currency]decimal.Decimal, error) {
	all, err := s.provider.LatestRates(ctx, base)
	if err != nil {
		s.logger.WithError(err).WithField("base", base).Error("rate table fetch failed")
		return nil, apperr.ErrRateUnavailable
	}

	filtered := make(map[models.Currency]decimal.Decimal)
	for _, currency := range models.SupportedCurrencies() {
		if rate, ok := all[string(currency)]; ok {
			filtered[currency] = rate
		}
	}
	return filtered, nil
}
