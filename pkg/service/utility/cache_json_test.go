package utility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct {
	CacheService
}

func (failingCache) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}

func TestJSONHelpers(t *testing.T) {
	cache := NewMemoryCacheService()
	t.Cleanup(func() { StopCacheService(cache) })
	ctx := t.Context()

	type payload struct {
		Tags []string `json:"tags"`
	}

	var out payload
	found, err := GetJSON(ctx, cache, "cms:themes", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, cache, "cms:themes", payload{Tags: []string{"go"}}, time.Minute))
	found, err = GetJSON(ctx, cache, "cms:themes", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"go"}, out.Tags)

	require.NoError(t, cache.Set(ctx, "cms:broken", "{", time.Minute))
	found, err = GetJSON(ctx, cache, "cms:broken", &out)
	assert.Error(t, err)
	assert.False(t, found)

	_, err = GetJSON(ctx, failingCache{cache}, "cms:themes", &out)
	assert.ErrorContains(t, err, "connection refused")
}

func TestDeleteByPattern(t *testing.T) {
	cache := NewMemoryCacheService()
	t.Cleanup(func() { StopCacheService(cache) })
	ctx := t.Context()

	for _, key := range []string{"cms:posts:_all", "cms:themes", "rss:feed:_all"} {
		require.NoError(t, cache.Set(ctx, key, "1", time.Minute))
	}

	n, err := DeleteByPattern(ctx, cache, "cms:*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := cache.Scan(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"rss:feed:_all"}, keys)

	n, err = DeleteByPattern(ctx, cache, "cms:*")
	require.NoError(t, err)
	assert.Zero(t, n)
}
