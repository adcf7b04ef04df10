package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"hotelbooking/constants"
	"hotelbooking/services/logger"
)

// Cache is a key/value store with per-key TTL. Get reports a miss with
// found=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string, target interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheTTL holds the expiry of each cached read.
type CacheTTL struct {
	Room         time.Duration
	Search       time.Duration
	Availability time.Duration
}

func DefaultCacheTTL() CacheTTL {
	return CacheTTL{
		Room:         constants.DefaultRoomTTL,
		Search:       constants.DefaultSearchTTL,
		Availability: constants.DefaultAvailabilityTTL,
	}
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, dataJSON, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// NoopCache is used when no Redis is configured; every read misses.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }

func tenantSegment(tenantID string) string {
	if tenantID == "" {
		return "_all"
	}
	return tenantID
}

// CacheKey builds {tenant}:{operation}:{sha1(json(params))}.
func CacheKey(tenantID, operation string, params interface{}) string {
	raw, err := json.Marshal(params)
	if err != nil {
		raw = []byte("null")
	}
	sum := sha1.Sum(raw)
	return tenantSegment(tenantID) + ":" + operation + ":" + hex.EncodeToString(sum[:])
}

// RoomKey is the detail key writers invalidate.
func RoomKey(tenantID, roomID string) string {
	return tenantSegment(tenantID) + ":" + constants.CacheOpRoom + ":" + roomID
}

// readThrough serves key from cache or calls load and stores the result.
// Cache errors are logged and never fail the read.
func readThrough[T any](ctx context.Context, cache Cache, log logger.Logger, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	found, err := cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("cache get %s failed: %v", key, err)
	} else if found {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := cache.Set(ctx, key, value, ttl); err != nil {
		log.Warn("cache set %s failed: %v", key, err)
	}
	return value, nil
}

func invalidateRoom(ctx context.Context, cache Cache, log logger.Logger, tenantID, roomID string) {
	keys := []string{RoomKey(tenantID, roomID)}
	if tenantID != "" {
		// unscoped superadmin reads share the "_all" segment
		keys = append(keys, RoomKey("", roomID))
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		log.Warn("cache invalidate room %s failed: %v", roomID, err)
	}
}
