package evidence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/pkg/cryptox"
)

const defaultRedisPrefix = "clinic:evidence"

// RedisCache stores entries as JSON values whose key TTL matches the entry's
// expiry, so Redis evicts stale entries itself.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

type redisEntry struct {
	InterventionType string    `json:"intervention_type"`
	Summary          string    `json:"summary"`
	Evidence         string    `json:"evidence"`
	FetchedAt        time.Time `json:"fetched_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}

func (c *RedisCache) Get(ctx context.Context, interventionType string) (domain.EvidenceEntry, bool, error) {
	raw, err := c.client.Get(ctx, c.key(interventionType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.EvidenceEntry{}, false, nil
	}
	if err != nil {
		return domain.EvidenceEntry{}, false, err
	}

	var re redisEntry
	if err := json.Unmarshal(raw, &re); err != nil {
		return domain.EvidenceEntry{}, false, fmt.Errorf("decode evidence entry: %w", err)
	}
	return domain.EvidenceEntry(re), true, nil
}

// Put skips entries that are already expired.
func (c *RedisCache) Put(ctx context.Context, e domain.EvidenceEntry) error {
	ttl := time.Until(e.ExpiresAt)
	if e.ExpiresAt.IsZero() {
		ttl = 0
	} else if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(redisEntry(e))
	if err != nil {
		return fmt.Errorf("encode evidence entry: %w", err)
	}
	return c.client.Set(ctx, c.key(e.InterventionType), raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, interventionType string) error {
	return c.client.Del(ctx, c.key(interventionType)).Err()
}

// RedisKey is the key an intervention type is stored under. The type is
// fingerprinted since it arrives straight from the request path.
func RedisKey(prefix, interventionType string) string {
	return prefix + ":" + cryptox.FingerprintToken(interventionType)
}

func (c *RedisCache) key(interventionType string) string {
	return RedisKey(c.prefix, interventionType)
}
