package cms

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/utility"
)

type countingRepo struct {
	postCalls  int32
	themeCalls int32
	delay      time.Duration
	postErr    error
	nilPosts   bool
}

func (r *countingRepo) PostConnection(ctx context.Context, filter *model.PostFilter) (*model.PostConnectionResult, error) {
	atomic.AddInt32(&r.postCalls, 1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.postErr != nil {
		return nil, r.postErr
	}
	if r.nilPosts {
		return nil, nil
	}
	return &model.PostConnectionResult{
		Data: model.PostConnectionData{PostConnection: &model.PostConnection{
			TotalCount: 1,
			Edges:      []model.PostEdge{{Node: &model.Post{ID: "p1", Title: "tagged " + filter.TagValue()}}},
		}},
		Query:     postConnectionQuery,
		Variables: map[string]interface{}{},
	}, nil
}

func (r *countingRepo) ThemeConnection(ctx context.Context) (*model.ThemeConnectionResult, error) {
	atomic.AddInt32(&r.themeCalls, 1)
	return &model.ThemeConnectionResult{
		Data: model.ThemeConnectionData{ThemeConnection: &model.ThemeConnection{
			Edges: []model.ThemeEdge{{Node: &model.Theme{ID: "t1", Data: []string{"go"}}}},
		}},
	}, nil
}

func newMemoryCache(t *testing.T) utility.CacheService {
	t.Helper()
	cache := utility.NewMemoryCacheService()
	t.Cleanup(func() { utility.StopCacheService(cache) })
	return cache
}

func TestPostsCacheKey(t *testing.T) {
	assert.Equal(t, "cms:posts:_all", PostsCacheKey(nil))
	assert.Equal(t, "cms:posts:_all", PostsCacheKey(&model.PostFilter{}))
	assert.Equal(t, "cms:posts:go", PostsCacheKey(&model.PostFilter{Tags: &model.StringFilter{Eq: "go"}}))
	assert.Equal(t, "cms:posts:a+b", PostsCacheKey(&model.PostFilter{Tags: &model.StringFilter{Eq: "a b"}}))
}

func TestCachedRepository_HitsCacheAfterFirstFetch(t *testing.T) {
	next := &countingRepo{}
	repo := NewCachedRepository(next, newMemoryCache(t), time.Minute)
	filter := &model.PostFilter{Tags: &model.StringFilter{Eq: "go"}}

	first, err := repo.PostConnection(t.Context(), filter)
	require.NoError(t, err)
	second, err := repo.PostConnection(t.Context(), filter)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&next.postCalls))
	assert.Equal(t, first.Connection().Nodes()[0].Title, second.Connection().Nodes()[0].Title)

	_, err = repo.PostConnection(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.postCalls), "different tag uses a different key")

	_, err = repo.ThemeConnection(t.Context())
	require.NoError(t, err)
	_, err = repo.ThemeConnection(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.themeCalls))
}

func TestCachedRepository_CachesNilResult(t *testing.T) {
	next := &countingRepo{nilPosts: true}
	repo := NewCachedRepository(next, newMemoryCache(t), time.Minute)

	for i := 0; i < 2; i++ {
		res, err := repo.PostConnection(t.Context(), nil)
		require.NoError(t, err)
		assert.Nil(t, res)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.postCalls))
}

func TestCachedRepository_ZeroTTLPassesThrough(t *testing.T) {
	next := &countingRepo{}
	repo := NewCachedRepository(next, newMemoryCache(t), 0)

	for i := 0; i < 3; i++ {
		_, err := repo.PostConnection(t.Context(), nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&next.postCalls))
}

func TestCachedRepository_ErrorsAreNotCached(t *testing.T) {
	next := &countingRepo{postErr: constant.ErrCMSUnavailable}
	repo := NewCachedRepository(next, newMemoryCache(t), time.Minute)

	for i := 0; i < 2; i++ {
		_, err := repo.PostConnection(t.Context(), nil)
		assert.True(t, errors.Is(err, constant.ErrCMSUnavailable))
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.postCalls))
}

func TestCachedRepository_CollapsesConcurrentMisses(t *testing.T) {
	next := &countingRepo{delay: 50 * time.Millisecond}
	repo := NewCachedRepository(next, newMemoryCache(t), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := repo.PostConnection(context.Background(), nil)
			assert.NoError(t, err)
			assert.NotNil(t, res)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&next.postCalls))
}

func TestCachedRepository_Invalidate(t *testing.T) {
	next := &countingRepo{}
	cache := newMemoryCache(t)
	repo := NewCachedRepository(next, cache, time.Minute)

	_, err := repo.PostConnection(t.Context(), nil)
	require.NoError(t, err)
	_, err = repo.ThemeConnection(t.Context())
	require.NoError(t, err)
	require.NoError(t, cache.Set(t.Context(), "rss:feed:_all", "keep", time.Minute))

	require.NoError(t, repo.Invalidate(t.Context()))

	keys, err := cache.Scan(t.Context(), "cms:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
	kept, err := cache.Get(t.Context(), "rss:feed:_all")
	require.NoError(t, err)
	assert.Equal(t, "keep", kept)

	_, err = repo.PostConnection(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.postCalls))
}

// gatedRepo 在 release 关闭前阻塞文章查询
type gatedRepo struct {
	countingRepo
	started chan struct{}
	release chan struct{}
}

func (r *gatedRepo) PostConnection(ctx context.Context, filter *model.PostFilter) (*model.PostConnectionResult, error) {
	if atomic.LoadInt32(&r.postCalls) == 0 {
		close(r.started)
		<-r.release
	}
	return r.countingRepo.PostConnection(ctx, filter)
}

func TestCachedRepository_InvalidateDuringFetchSkipsStore(t *testing.T) {
	next := &gatedRepo{started: make(chan struct{}), release: make(chan struct{})}
	cache := newMemoryCache(t)
	repo := NewCachedRepository(next, cache, time.Minute)

	done := make(chan error, 1)
	go func() {
		_, err := repo.PostConnection(context.Background(), nil)
		done <- err
	}()

	<-next.started
	require.NoError(t, repo.Invalidate(t.Context()))
	close(next.release)
	require.NoError(t, <-done)

	cached, err := cache.Get(t.Context(), PostsCacheKey(nil))
	require.NoError(t, err)
	assert.Empty(t, cached, "a fetch that overlapped an invalidation must not repopulate the cache")

	gen, err := cache.Get(t.Context(), constant.CacheKeyCMSGeneration)
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	_, err = repo.PostConnection(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.postCalls))

	cached, err = cache.Get(t.Context(), PostsCacheKey(nil))
	require.NoError(t, err)
	assert.NotEmpty(t, cached)
}
