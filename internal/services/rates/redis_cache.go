package rates

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "fx:rate:"

// RedisCache backs the pair cache with Redis so rates survive restarts and
// are shared across instances. TTL is enforced by Redis expiry. Any Redis
// error degrades to a cache miss; the oracle then refetches.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisCache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, pair string) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, redisKeyPrefix+pair).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("rate cache read failed")
		}
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(val)
	if err != nil {
		c.logger.WithError(err).Warnf("corrupt rate cache entry for %s", pair)
		return decimal.Zero, false
	}
	return rate, true
}

func (c *RedisCache) Set(ctx context.Context, pair string, rate decimal.Decimal) {
	if err := c.client.Set(ctx, redisKeyPrefix+pair, rate.String(), c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("rate cache write failed")
	}
}
