package utility

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON 读取并解码 JSON 缓存，found 为 false 表示未命中
func GetJSON(ctx context.Context, cache CacheService, key string, out interface{}) (found bool, err error) {
	cached, err := cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("读取缓存 %s 失败: %w", key, err)
	}
	if cached == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		return false, fmt.Errorf("解析缓存 %s 失败: %w", key, err)
	}
	return true, nil
}

// SetJSON 将 value 编码为 JSON 后写入缓存
func SetJSON(ctx context.Context, cache CacheService, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", key, err)
	}
	if err := cache.Set(ctx, key, string(data), ttl); err != nil {
		return fmt.Errorf("写入缓存 %s 失败: %w", key, err)
	}
	return nil
}

// DeleteByPattern 删除匹配模式的全部键，返回删除数量
func DeleteByPattern(ctx context.Context, cache CacheService, pattern string) (int, error) {
	keys, err := cache.Scan(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("扫描缓存 %s 失败: %w", pattern, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		return 0, fmt.Errorf("删除缓存失败: %w", err)
	}
	return len(keys), nil
}
