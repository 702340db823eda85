// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tubelytics/pkg/types"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, time.Minute, nil), mr
}

func sampleResponse() *types.SearchResponse {
	return &types.SearchResponse{
		AvgFleschKincaidGrade: types.Float(5.2),
		AvgFleschReadingEase:  types.Float(70.1),
		Items: []types.SearchItem{{
			ID:      types.VideoID{Kind: "youtube#video", VideoID: "abc123"},
			Snippet: types.Snippet{Title: "Cats", ChannelID: "ch1", FKGrade: types.Float(5.2)},
		}},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "tubelytics:search:cats & dogs", Key("  Cats & Dogs "))
	assert.Equal(t, Key("GO"), Key("go"))
}

func TestSetGet(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "cats")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "cats", sampleResponse()))
	assert.True(t, mr.Exists("tubelytics:search:cats"))
	assert.Equal(t, time.Minute, mr.TTL("tubelytics:search:cats"))

	got, ok, err := c.Get(ctx, "CATS")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResponse(), got)
}

func TestEntryExpires(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "cats", sampleResponse()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "cats")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptEntryIsMiss(t *testing.T) {
	c, mr := setupCache(t)
	require.NoError(t, mr.Set(Key("cats"), "{not json"))

	_, ok, err := c.Get(context.Background(), "cats")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists(Key("cats")))
}

func TestServerDown(t *testing.T) {
	c, mr := setupCache(t)
	mr.Close()

	_, _, err := c.Get(context.Background(), "cats")
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "cats", sampleResponse()))
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "cats", sampleResponse()))
	got, ok, err := c.Get(ctx, "cats")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := Open(ctx, types.CacheConfig{RedisURL: "redis://" + mr.Addr() + "/0", TTL: time.Minute}, nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	t.Cleanup(func() { c.Close() })
	assert.NoError(t, c.Ping(ctx))

	c, err = Open(ctx, types.CacheConfig{}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = Open(ctx, types.CacheConfig{RedisURL: "://bad"}, nil)
	assert.Error(t, err)
}
