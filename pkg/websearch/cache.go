package websearch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider memoizes search responses in Redis. Medical guidance queries
// repeat heavily across sessions and the upstream APIs are rate limited, so a
// short TTL pays for itself. Cache failures degrade to a live search.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
	}
}

func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

func (p *CachedProvider) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	key := cacheKey(query, maxResults)

	if p.rdb != nil {
		if raw, err := p.rdb.Get(ctx, key).Result(); err == nil {
			var cached []SearchResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	results, err := p.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if p.rdb != nil && len(results) > 0 {
		if raw, err := json.Marshal(results); err == nil {
			p.rdb.Set(ctx, key, raw, p.ttl)
		}
	}
	return results, nil
}

func cacheKey(query string, maxResults int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return "websearch:" + hex.EncodeToString(sum[:8]) + ":" + strconv.Itoa(maxResults)
}
