package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/formsync/formsync-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const cacheName = "monday_columns"

// ColumnValueFetcher reads column display values for one item from the
// source board
type ColumnValueFetcher func(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error)

// ColumnCache is a short-TTL cache of source-board column values. Monday.com
// fires one webhook per matching automation, so a burst of form creations
// for the same item would otherwise repeat identical board reads.
type ColumnCache struct {
	cache *gocache.Cache
	fetch ColumnValueFetcher
}

// NewColumnCache creates a column value cache with the given TTL in seconds
func NewColumnCache(fetch ColumnValueFetcher, ttlSeconds int) *ColumnCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &ColumnCache{
		cache: gocache.New(ttl, 2*ttl),
		fetch: fetch,
	}
}

// Get returns the display values of the requested columns, reading through
// to the source board on a miss
func (c *ColumnCache) Get(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error) {
	key := cacheKey(itemID, columnIDs)

	if data, found := c.cache.Get(key); found {
		if values, ok := data.(map[string]string); ok {
			metrics.CacheHits.WithLabelValues(cacheName).Inc()
			logger.Debug("Column value cache hit", zap.String("item_id", itemID))
			return values, nil
		}
		c.cache.Delete(key)
	}

	metrics.CacheMisses.WithLabelValues(cacheName).Inc()

	values, err := c.fetch(ctx, itemID, columnIDs)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(key, values)
	return values, nil
}

func cacheKey(itemID string, columnIDs []string) string {
	ids := append([]string(nil), columnIDs...)
	sort.Strings(ids)
	return itemID + "|" + strings.Join(ids, ",")
}
