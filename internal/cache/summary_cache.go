package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hypevault/backend-go/internal/config"
	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	summaryKeyPrefix     = "inventory:summary"
	summaryScanBatchSize = 100
)

// SummaryCache caches the KPI summary per distinct filter combination.
// The cache is write-through with a short TTL; any item mutation calls
// InvalidateAll so stale totals never outlive a change by much.
type SummaryCache interface {
	Get(ctx context.Context, q metrics.Query) (domain.KPISummary, bool, error)
	Set(ctx context.Context, q metrics.Query, summary domain.KPISummary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) Get(ctx context.Context, q metrics.Query) (domain.KPISummary, bool, error) {
	key := buildSummaryKey(q)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return domain.KPISummary{}, false, nil
	}
	if err != nil {
		return domain.KPISummary{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.KPISummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return domain.KPISummary{}, false, fmt.Errorf("decode summary cache: %w", err)
	}

	return summary, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, q metrics.Query, summary domain.KPISummary) error {
	key := buildSummaryKey(q)
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, summaryKeyPrefix, summaryScanBatchSize)
}

func (n *noopSummaryCache) Get(ctx context.Context, q metrics.Query) (domain.KPISummary, bool, error) {
	return domain.KPISummary{}, false, nil
}

func (n *noopSummaryCache) Set(ctx context.Context, q metrics.Query, summary domain.KPISummary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSummaryKey(q metrics.Query) string {
	return fmt.Sprintf("%s:%s", summaryKeyPrefix, queryHash(q))
}

// queryHash folds the filter-relevant parts of the query into a stable key.
// Page and sort are deliberately left out: the summary covers the whole
// filtered set, so every page of the same filters shares one entry.
func queryHash(q metrics.Query) string {
	parts := []string{}

	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		parts = append(parts, "search="+search)
	}
	if q.TagID != nil {
		parts = append(parts, fmt.Sprintf("tag=%d", *q.TagID))
	}
	if q.Currency != "" {
		parts = append(parts, "currency="+strings.ToUpper(strings.TrimSpace(q.Currency)))
	}

	if len(q.Filters) > 0 {
		normalized := make([]string, 0, len(q.Filters))
		for _, f := range q.Filters {
			value := strings.ToLower(strings.TrimSpace(f.Value))
			if value == "" {
				continue
			}
			normalized = append(normalized, f.Type+"="+value)
		}
		if len(normalized) > 0 {
			sort.Strings(normalized)
			parts = append(parts, "filters="+strings.Join(normalized, ","))
		}
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
