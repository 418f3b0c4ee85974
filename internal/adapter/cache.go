package adapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carelinkhq/carelink-backend/internal/config"
)

// CacheAdapter wraps redis for read-side caching. A nil adapter (redis not
// configured or unreachable) degrades to pass-through.
type CacheAdapter struct {
	client *redis.Client
}

func NewCacheAdapter(cfg *config.Config) *CacheAdapter {
	if !cfg.RedisEnabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect to redis, caching disabled", "error", err)
		return nil
	}

	slog.Info("connected to redis", "addr", cfg.RedisHost+":"+cfg.RedisPort)
	return &CacheAdapter{client: client}
}

// GetJSON unmarshals the cached value into dest; false on miss or error.
func (r *CacheAdapter) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if r == nil {
		return false
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores value as JSON with a TTL; errors are logged only.
func (r *CacheAdapter) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if r == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		slog.Error("cache set failed", "key", key, "error", err)
	}
}

func (r *CacheAdapter) Delete(ctx context.Context, keys ...string) {
	if r == nil || len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		slog.Error("cache delete failed", "error", err)
	}
}

// Incr bumps an integer counter key. Used for cache-version tokens:
// bumping the version orphans every key derived from the old value.
func (r *CacheAdapter) Incr(ctx context.Context, key string) {
	if r == nil {
		return
	}
	if err := r.client.Incr(ctx, key).Err(); err != nil {
		slog.Error("cache incr failed", "key", key, "error", err)
	}
}

func (r *CacheAdapter) Close() {
	if r == nil {
		return
	}
	_ = r.client.Close()
}
