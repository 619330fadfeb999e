package cms

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/utility"
)

// 代数计数只需覆盖进行中的查询
const generationTTL = 7 * 24 * time.Hour

// CachedRepository 为内容源查询结果加一层缓存。
// 同一个 key 的并发未命中只会触发一次上游查询；
// 查询期间发生过失效时，结果照常返回但不写入缓存。
type CachedRepository struct {
	next  repository.ContentRepository
	cache utility.CacheService
	ttl   time.Duration
	group singleflight.Group
	// mu 让"检查代数并写入"与失效互斥
	mu sync.RWMutex
}

// NewCachedRepository 创建带缓存的内容仓库，ttl <= 0 时直接透传
func NewCachedRepository(next repository.ContentRepository, cache utility.CacheService, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

// PostsCacheKey 返回文章查询的缓存键
func PostsCacheKey(filter *model.PostFilter) string {
	tag := filter.TagValue()
	if tag == "" {
		return constant.CacheKeyPosts + constant.CacheAllTagsMarker
	}
	return constant.CacheKeyPosts + url.QueryEscape(tag)
}

func (r *CachedRepository) PostConnection(ctx context.Context, filter *model.PostFilter) (*model.PostConnectionResult, error) {
	if r.ttl <= 0 {
		return r.next.PostConnection(ctx, filter)
	}

	key := PostsCacheKey(filter)
	var result *model.PostConnectionResult
	if hit := r.load(ctx, key, &result); hit {
		return result, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		bg := context.WithoutCancel(ctx)
		gen, genErr := r.generation(bg)
		res, err := r.next.PostConnection(bg, filter)
		if err != nil {
			return nil, err
		}
		if genErr == nil {
			r.storeIfCurrent(bg, key, res, gen)
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.PostConnectionResult), nil
}

func (r *CachedRepository) ThemeConnection(ctx context.Context) (*model.ThemeConnectionResult, error) {
	if r.ttl <= 0 {
		return r.next.ThemeConnection(ctx)
	}

	key := constant.CacheKeyThemes
	var result *model.ThemeConnectionResult
	if hit := r.load(ctx, key, &result); hit {
		return result, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		bg := context.WithoutCancel(ctx)
		gen, genErr := r.generation(bg)
		res, err := r.next.ThemeConnection(bg)
		if err != nil {
			return nil, err
		}
		if genErr == nil {
			r.storeIfCurrent(bg, key, res, gen)
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.ThemeConnectionResult), nil
}

// Invalidate 推进缓存代数并清除所有内容源缓存
func (r *CachedRepository) Invalidate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.cache.Increment(ctx, constant.CacheKeyCMSGeneration); err != nil {
		return fmt.Errorf("更新内容缓存代数失败: %w", err)
	}
	if err := r.cache.Expire(ctx, constant.CacheKeyCMSGeneration, generationTTL); err != nil {
		log.Printf("[CMS Cache] 设置代数过期时间失败: %v", err)
	}

	n, err := utility.DeleteByPattern(ctx, r.cache, constant.CacheKeyPrefixCMS+"*")
	if err != nil {
		return fmt.Errorf("清除内容缓存失败: %w", err)
	}
	if n > 0 {
		log.Printf("[CMS Cache] 已清除 %d 个内容缓存键", n)
	}
	return nil
}

// load 读取缓存，缓存读取或解析失败都视为未命中
func (r *CachedRepository) load(ctx context.Context, key string, out interface{}) bool {
	found, err := utility.GetJSON(ctx, r.cache, key, out)
	if err != nil {
		log.Printf("[CMS Cache] %v", err)
	}
	return found
}

// generation 读取当前缓存代数，键不存在时为空字符串
func (r *CachedRepository) generation(ctx context.Context) (string, error) {
	gen, err := r.cache.Get(ctx, constant.CacheKeyCMSGeneration)
	if err != nil {
		log.Printf("[CMS Cache] 读取缓存代数失败: %v", err)
	}
	return gen, err
}

// storeIfCurrent 仅在查询期间没有发生失效时写入缓存
func (r *CachedRepository) storeIfCurrent(ctx context.Context, key string, value interface{}, gen string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current, err := r.generation(ctx)
	if err != nil {
		return
	}
	if current != gen {
		log.Printf("[CMS Cache] %s 查询期间缓存已失效，跳过写入", key)
		return
	}
	if err := utility.SetJSON(ctx, r.cache, key, value, r.ttl); err != nil {
		log.Printf("[CMS Cache] %v", err)
	}
}
