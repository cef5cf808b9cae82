package cache

import (
	"fmt"
	"io"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SummaryCacheFactory creates summary caches based on configuration
type SummaryCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SummaryCacheFactoryOption is a functional option for configuring the factory
type SummaryCacheFactoryOption func(*SummaryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSummaryCacheFactory creates a new factory
func NewSummaryCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...SummaryCacheFactoryOption) *SummaryCacheFactory {
	f := &SummaryCacheFactory{
		redisConfig:           redisCfg,
		cacheConfig:           cacheCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SummaryCache is a billing.SummaryCache that must be closed on shutdown
type SummaryCache interface {
	billing.SummaryCache
	io.Closer
}

// CreateCache returns a Redis cache when Redis is enabled and reachable,
// otherwise an in-memory cache
func (f *SummaryCacheFactory) CreateCache() (SummaryCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Using in-memory summary cache")
		return NewInMemorySummaryCache(f.cacheConfig.SummaryTTL), nil
	}

	client, err := NewRedisClient(f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis summary cache", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisSummaryCache(client, f.cacheConfig.SummaryTTL), nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for summary cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory summary cache. "+
		"Invalidations will not be shared between instances.",
		zap.Error(err),
	)
	return NewInMemorySummaryCache(f.cacheConfig.SummaryTTL), nil
}
