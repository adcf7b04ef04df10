package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/constants"
	"hotelbooking/services/logger"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

func TestRedisCache_RoundTripAndTTL(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()

	var miss []string
	found, err := cache.Get(ctx, "k", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "k", []string{"a", "b"}, time.Minute))
	var got []string
	found, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	mr.FastForward(2 * time.Minute)
	found, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry expires after its ttl")

	require.NoError(t, cache.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, cache.Delete(ctx, "k", "missing"))
	assert.False(t, mr.Exists("k"))
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(testTenant, constants.CacheOpSearch, SearchParams{Text: "wifi"})
	b := CacheKey(testTenant, constants.CacheOpSearch, SearchParams{Text: "wifi"})
	c := CacheKey(testTenant, constants.CacheOpSearch, SearchParams{Text: "spa"})
	d := CacheKey("hotel-b", constants.CacheOpSearch, SearchParams{Text: "wifi"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Regexp(t, `^hotel-a:search:[0-9a-f]{40}$`, a)
	assert.Equal(t, "_all:room:r1", RoomKey("", "r1"))
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("redis down")
}

func (failingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("redis down")
}

func (failingCache) Delete(context.Context, ...string) error { return errors.New("redis down") }

func TestReadThrough_CacheFailureFallsBack(t *testing.T) {
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := readThrough(context.Background(), failingCache{}, logger.NewDiscardLogger(), "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestCachedCatalog_InvalidatesOnWrite(t *testing.T) {
	env := newTestEnv(t, nil)
	cache, _ := newRedisCache(t)
	env.catalog.cache = cache
	cached := NewCachedCatalog(env.catalog, cache, DefaultCacheTTL(), logger.NewDiscardLogger())

	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	first, err := cached.Get(env.ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(first.PricePerNight))

	// a write that bypasses the service leaves the cached copy in place
	raw, err := env.stores.Rooms.GetByID(env.ctx, room.ID)
	require.NoError(t, err)
	raw.PricePerNight = decimal.NewFromInt(110)
	require.NoError(t, env.stores.Rooms.Update(env.ctx, raw))

	stale, err := cached.Get(env.ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(stale.PricePerNight))

	price := decimal.NewFromInt(150)
	_, err = env.catalog.Update(env.ctx, room.ID, RoomPatch{PricePerNight: &price})
	require.NoError(t, err)

	fresh, err := cached.Get(env.ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(fresh.PricePerNight))
}

func TestCachedCatalog_SearchIsTenantScoped(t *testing.T) {
	env := newTestEnv(t, nil)
	cache, mr := newRedisCache(t)
	cached := NewCachedCatalog(env.catalog, cache, DefaultCacheTTL(), logger.NewDiscardLogger())
	env.addRoom(t, "101", constants.RoomTypeDouble, 100)

	res, err := cached.Search(env.ctx, SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.True(t, mr.Exists(CacheKey(testTenant, constants.CacheOpRoomList, SearchParams{})))

	res, err = cached.Search(WithTenant(env.ctx, "hotel-b"), SearchParams{})
	require.NoError(t, err)
	assert.Zero(t, res.Total)

	_, err = cached.Search(env.ctx, SearchParams{Text: "101"})
	require.NoError(t, err)
	ttl := mr.TTL(CacheKey(testTenant, constants.CacheOpSearch, SearchParams{Text: "101"}))
	assert.Equal(t, constants.DefaultSearchTTL, ttl)
}

func TestCachedAvailability(t *testing.T) {
	env := newTestEnv(t, nil)
	cache, mr := newRedisCache(t)
	cached := NewCachedAvailability(env.availability, cache, DefaultCacheTTL(), logger.NewDiscardLogger())
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)

	rooms, err := cached.CheckAvailability(env.ctx, testTenant, date("2024-06-01"), date("2024-06-03"), "")
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	// served from cache until the ttl passes
	env.book(t, guest, room.ID, "2024-06-01", "2024-06-03")
	rooms, err = cached.CheckAvailability(env.ctx, testTenant, date("2024-06-01"), date("2024-06-03"), "")
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	mr.FastForward(constants.DefaultAvailabilityTTL + time.Second)
	rooms, err = cached.CheckAvailability(env.ctx, testTenant, date("2024-06-01"), date("2024-06-03"), "")
	require.NoError(t, err)
	assert.Empty(t, rooms)

	days, err := cached.Calendar(env.ctx, testTenant, date("2024-06-01"), date("2024-06-02"), room.ID)
	require.NoError(t, err)
	assert.Len(t, days, 2)
}
