package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"goflix/internal/engine"
	"goflix/internal/logging"
)

// RecommendationCache is the short-TTL cache in front of
// Engine.RecommendForUser described in SPEC_FULL §10: keyed by
// (user_id, count, matrix generation) so a cache hit can never return a
// result older than the matrix state it was computed against, preserving
// §8's determinism property. Grounded on the teacher's
// api-coordinator/internal/cache/redis_conn.go client construction.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logging.Logger
}

// NewRecommendationCache connects to Redis using addr/password/db exactly
// as the teacher's NewRedisClient does.
func NewRecommendationCache(addr, password string, db int, ttlSeconds int) *RecommendationCache {
	return &RecommendationCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    time.Duration(ttlSeconds) * time.Second,
		log:    logging.New("cache"),
	}
}

func cacheKey(userID string, count int, generation uint64) string {
	return fmt.Sprintf("goflix:rec:%s:%d:%d", userID, count, generation)
}

// Get returns a cached recommendation result, or ok=false on a miss,
// error, or disabled cache (ttl<=0).
func (c *RecommendationCache) Get(ctx context.Context, userID string, count int, generation uint64) ([]engine.Recommendation, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKey(userID, count, generation)).Bytes()
	if err != nil {
		return nil, false
	}
	var out []engine.Recommendation
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

// Set stores a recommendation result under the current matrix generation,
// so any ingestion that writes a rating or changes a subscription (both
// bump the generation) invalidates it without an explicit delete.
func (c *RecommendationCache) Set(ctx context.Context, userID string, count int, generation uint64, recs []engine.Recommendation) {
	if c == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(userID, count, generation), raw, c.ttl).Err(); err != nil {
		c.log.Warn("recommendation cache set failed: %v", err)
	}
}
