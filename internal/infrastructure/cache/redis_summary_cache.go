package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const defaultSummaryKeyPrefix = "easybill:summary:"

// RedisSummaryCache implements billing.SummaryCache using Redis.
// Suitable for deployments where several instances share invalidations.
type RedisSummaryCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// cachedSummary is the stored JSON form; decimals keep their exact string form
type cachedSummary struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
	Count   int    `json:"count"`
	Tax     string `json:"tax"`
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisSummaryCache creates a cache over an existing client
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{
		client:    client,
		keyPrefix: defaultSummaryKeyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached summaries of an account together with its generation
func (c *RedisSummaryCache) Get(ctx context.Context, accountID uuid.UUID) ([]billing.MonthlySummary, int64, bool, error) {
	values, err := c.client.MGet(ctx, c.key(accountID), c.generationKey(accountID)).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to read summary cache: %w", err)
	}

	gen, err := parseGeneration(values[1])
	if err != nil {
		return nil, 0, false, err
	}
	raw, ok := values[0].(string)
	if !ok {
		return nil, gen, false, nil
	}

	summaries, err := decodeSummaries([]byte(raw))
	if err != nil {
		return nil, gen, false, err
	}
	return summaries, gen, true, nil
}

// Set stores summaries with the configured TTL. The generation key is watched,
// so an Invalidate racing with the write aborts it.
func (c *RedisSummaryCache) Set(ctx context.Context, accountID uuid.UUID, generation int64, summaries []billing.MonthlySummary) error {
	raw, err := encodeSummaries(summaries)
	if err != nil {
		return err
	}

	genKey := c.generationKey(accountID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(accountID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summaries of an account and advances its generation
func (c *RedisSummaryCache) Invalidate(ctx context.Context, accountID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.generationKey(accountID))
		pipe.Del(ctx, c.key(accountID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

func (c *RedisSummaryCache) key(accountID uuid.UUID) string {
	return c.keyPrefix + accountID.String()
}

// generationKey has no TTL so an expired counter cannot repeat an old value
func (c *RedisSummaryCache) generationKey(accountID uuid.UUID) string {
	return c.keyPrefix + "gen:" + accountID.String()
}

func parseGeneration(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to decode summary generation: %w", err)
	}
	return gen, nil
}

func encodeSummaries(summaries []billing.MonthlySummary) ([]byte, error) {
	out := make([]cachedSummary, len(summaries))
	for i, s := range summaries {
		out[i] = cachedSummary{
			Month:   s.Month,
			Revenue: s.Revenue.String(),
			Count:   s.Count,
			Tax:     s.Tax.String(),
		}
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summaries: %w", err)
	}
	return raw, nil
}

func decodeSummaries(raw []byte) ([]billing.MonthlySummary, error) {
	var in []cachedSummary
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("failed to decode summaries: %w", err)
	}

	out := make([]billing.MonthlySummary, len(in))
	for i, s := range in {
		revenue, err := decimal.NewFromString(s.Revenue)
		if err != nil {
			return nil, fmt.Errorf("failed to decode revenue: %w", err)
		}
		tax, err := decimal.NewFromString(s.Tax)
		if err != nil {
			return nil, fmt.Errorf("failed to decode tax: %w", err)
		}
		out[i] = billing.MonthlySummary{Month: s.Month, Revenue: revenue, Count: s.Count, Tax: tax}
	}
	return out, nil
}

var _ billing.SummaryCache = (*RedisSummaryCache)(nil)
