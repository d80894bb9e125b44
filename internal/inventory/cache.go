package inventory

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// rdb is nil when REDIS_ADDR is unset; every cache helper degrades to a
// no-op so analytics are simply served uncached.
var rdb *redis.Client

const analyticsTTL = 60 * time.Second

// InitCache opens the Redis client from the environment. Optional: an empty
// REDIS_ADDR leaves caching disabled.
func InitCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	})
	log.Info().Str("addr", addr).Msg("Inventory analytics cache enabled")
}

func analyticsCacheKey(campID string) string {
	return "inventory:analytics:" + campID
}

func cachedAnalytics(ctx context.Context, campID string) (*AnalyticsResponse, bool) {
	if rdb == nil {
		return nil, false
	}
	raw, err := rdb.Get(ctx, analyticsCacheKey(campID)).Bytes()
	if err != nil {
		return nil, false
	}
	var out AnalyticsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func storeAnalytics(ctx context.Context, campID string, v *AnalyticsResponse) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, analyticsCacheKey(campID), raw, analyticsTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to cache analytics summary")
	}
}

// invalidateAnalytics drops the cached summary after any stock mutation.
func invalidateAnalytics(ctx context.Context, campID string) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, analyticsCacheKey(campID)).Err()
}
