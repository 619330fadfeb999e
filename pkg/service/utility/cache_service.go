/*
 * @Description: Redis 缓存服务
 * @Author: 安知鱼
 * @Date: 2026-09-04 15:17:47
 * @LastEditTime: 2026-10-14 21:10:03
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService 缓存服务接口，Redis 与内存实现共用
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Get 获取缓存，key 不存在时返回空字符串和 nil 错误
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key ...string) error
	// Scan 返回匹配 glob 模式的全部键
	Scan(ctx context.Context, pattern string) ([]string, error)
	// Increment 原子地将整数值加一，key 不存在时从 0 开始
	Increment(ctx context.Context, key string) (int64, error)
	// Expire 设置键的过期时间，expiration <= 0 时删除该键
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

// 每批 SCAN 的建议数量
const scanBatchSize = 100

type redisCacheService struct {
	client *redis.Client
}

// NewCacheService 创建 Redis 缓存服务
func NewCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *redisCacheService) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Scan 使用 SCAN 迭代，避免在生产环境中使用 KEYS
func (s *redisCacheService) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *redisCacheService) Increment(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *redisCacheService) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return s.client.Expire(ctx, key, expiration).Err()
}
