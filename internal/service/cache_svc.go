package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/clipdeck/clipdeck-go/internal/model"
)

// ClipCacheTTL bounds staleness of cached clip documents; the
// engagement worker usually invalidates them well before expiry.
const ClipCacheTTL = 5 * time.Minute

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipdeck_cache_hits_total",
		Help: "Total Redis cache hits for clip documents.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipdeck_cache_misses_total",
		Help: "Total Redis cache misses for clip documents.",
	})
)

// CacheService is a Redis cache-aside layer for unpersonalized
// enriched clip documents. isLiked is viewer-dependent and is never
// cached; callers overlay it per request.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, the returned service has a nil client and all
// cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetClip retrieves a cached clip document. Returns nil on miss or
// when caching is disabled.
func (c *CacheService) GetClip(ctx context.Context, clipID string) (*model.EnrichedClip, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, clipKey(clipID)).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var clip model.EnrichedClip
	if err := json.Unmarshal(data, &clip); err != nil {
		return nil, err
	}
	cacheHits.Inc()
	return &clip, nil
}

// SetClip stores an unpersonalized clip document. The caller must not
// cache viewer-specific state (IsLiked stays false in cached copies).
func (c *CacheService) SetClip(ctx context.Context, clipID string, clip *model.EnrichedClip) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(clip)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, clipKey(clipID), b, ClipCacheTTL).Err()
}

// InvalidateClip removes a clip document from cache (called after
// like/comment/delete changes).
func (c *CacheService) InvalidateClip(ctx context.Context, clipID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, clipKey(clipID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func clipKey(clipID string) string {
	return fmt.Sprintf("clip:%s", clipID)
}
