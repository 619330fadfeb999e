/*
 * @Description: 内存缓存服务实现（用于 Redis 不可用时的降级方案）
 * @Author: 安知鱼
 * @Date: 2026-09-04 00:00:00
 * @LastEditTime: 2026-10-14 21:32:18
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// 后台清理过期数据的间隔
const memoryCleanupInterval = time.Minute

type cacheItem struct {
	value string
	// expiresAt 为零值表示永不过期
	expiresAt time.Time
}

func (item cacheItem) expired(now time.Time) bool {
	return !item.expiresAt.IsZero() && now.After(item.expiresAt)
}

type memoryCacheService struct {
	mu       sync.RWMutex
	items    map[string]cacheItem
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryCacheService 创建内存缓存服务，调用方负责通过 StopCacheService 停止后台清理
func NewMemoryCacheService() CacheService {
	svc := &memoryCacheService{
		items: make(map[string]cacheItem),
		now:   time.Now,
		done:  make(chan struct{}),
	}
	go svc.cleanupLoop(memoryCleanupInterval)
	return svc
}

func (s *memoryCacheService) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.done:
			return
		}
	}
}

func (s *memoryCacheService) removeExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, item := range s.items {
		if item.expired(now) {
			delete(s.items, key)
		}
	}
}

// Stop 停止清理任务，可重复调用
func (s *memoryCacheService) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *memoryCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	item := cacheItem{value: toString(value)}
	if expiration > 0 {
		item.expiresAt = s.now().Add(expiration)
	}

	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *memoryCacheService) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || item.expired(s.now()) {
		return "", nil
	}
	return item.value, nil
}

func (s *memoryCacheService) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

// Scan 返回未过期且匹配模式的键，模式只支持 * 通配符
func (s *memoryCacheService) Scan(ctx context.Context, pattern string) ([]string, error) {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key, item := range s.items {
		if !item.expired(now) && matchPattern(key, pattern) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Increment 与 Redis INCR 一致：保留原有过期时间，值不是整数时报错
func (s *memoryCacheService) Increment(ctx context.Context, key string) (int64, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok || item.expired(now) {
		item = cacheItem{}
	}
	var n int64
	if item.value != "" {
		v, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("键 %s 的值不是整数", key)
		}
		n = v
	}
	n++
	item.value = strconv.FormatInt(n, 10)
	s.items[key] = item
	return n, nil
}

func (s *memoryCacheService) Expire(ctx context.Context, key string, expiration time.Duration) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok || item.expired(now) {
		return nil
	}
	if expiration <= 0 {
		delete(s.items, key)
		return nil
	}
	item.expiresAt = now.Add(expiration)
	s.items[key] = item
	return nil
}

// toString 与 Redis 客户端保持一致：[]byte 和 string 原样保存，其它类型格式化
func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// matchPattern 按 * 切分模式，各段须依次出现，首尾段分别锚定开头和结尾
func matchPattern(s, pattern string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return s == pattern
	}

	first, last := parts[0], parts[len(parts)-1]
	if !strings.HasPrefix(s, first) || !strings.HasSuffix(s, last) || len(s) < len(first)+len(last) {
		return false
	}

	rest := s[len(first) : len(s)-len(last)]
	for _, part := range parts[1 : len(parts)-1] {
		pos := strings.Index(rest, part)
		if pos == -1 {
			return false
		}
		rest = rest[pos+len(part):]
	}
	return true
}
