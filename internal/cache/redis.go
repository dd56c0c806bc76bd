package cache

import (
	"context"
	"time"

	"garment-backend/internal/logging"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Key prefixes
const (
	SettingsKeyPrefix = "settings:"
	DraftKeyPrefix    = "worksheet:draft:"
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// function degrades to a miss.
func Init(addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		client = nil
		return err
	}
	client = c
	return nil
}

// Close releases the connection pool
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.Named("redis").Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logging.Named("redis").Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	var keys []string
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logging.Named("redis").Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateSettingCaches clears all setting-related caches
// Called when: UpdateSetting
func InvalidateSettingCaches(ctx context.Context) {
	InvalidatePattern(ctx, SettingsKeyPrefix+"*")
}

// PreWarmKey fills key in the background so the next reader hits the cache
func PreWarmKey(key string, fetcher func(ctx context.Context) ([]byte, error), ttl time.Duration) {
	if client == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data, err := fetcher(ctx)
		if err != nil {
			logging.Named("redis").Debug("pre-warm failed", zap.String("key", key), zap.Error(err))
			return
		}
		SetCached(ctx, key, data, ttl)
	}()
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
