/*
 * @Description: 智能缓存工厂，自动选择 Redis 或内存缓存
 * @Author: 安知鱼
 * @Date: 2026-09-04 00:00:00
 * @LastEditTime: 2026-10-14 22:05:10
 * @LastEditors: 安知鱼
 */
package utility

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// CacheServiceType 缓存服务类型
type CacheServiceType string

const (
	CacheTypeRedis  CacheServiceType = "redis"
	CacheTypeMemory CacheServiceType = "memory"
)

// NewCacheServiceWithFallback 创建缓存服务，redisClient 为 nil 时降级到内存缓存。
// redisClient 应当已经通过连通性检查。
func NewCacheServiceWithFallback(redisClient *redis.Client) CacheService {
	if redisClient == nil {
		log.Println("🔄 使用内存缓存服务（Memory Cache）")
		return NewMemoryCacheService()
	}
	log.Println("✅ 使用 Redis 缓存服务")
	return NewCacheService(redisClient)
}

// GetCacheServiceType 获取当前使用的缓存类型
func GetCacheServiceType(svc CacheService) CacheServiceType {
	if _, ok := svc.(*redisCacheService); ok {
		return CacheTypeRedis
	}
	return CacheTypeMemory
}

// StopCacheService 停止内存缓存的后台清理协程，对 Redis 实现无操作
func StopCacheService(svc CacheService) {
	if stopper, ok := svc.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}
