/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-04 11:30:55
 * @LastEditTime: 2026-10-14 22:02:31
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/anheyu-posts/pkg/config"
)

// 建连与探活超时，避免 Redis 不可达时拖慢启动
const (
	redisDialTimeout = 3 * time.Second
	redisPingTimeout = 3 * time.Second
)

// RedisOptions 从配置构建客户端参数，Addr 为空表示未启用 Redis
func RedisOptions(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:        cfg.GetString(config.KeyRedisAddr),
		Password:    cfg.GetString(config.KeyRedisPassword),
		DB:          cfg.GetInt(config.KeyRedisDB),
		DialTimeout: redisDialTimeout,
	}
}

// NewRedisClient 返回可用的 Redis 客户端。
// 未配置或连接失败时返回 nil 而不是 error，让上层降级到内存缓存。
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts := RedisOptions(cfg)
	if opts.Addr == "" {
		log.Println("⚠️  Redis 地址未配置，将使用内存缓存")
		return nil, nil
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("⚠️  连接 Redis (%s, DB %d) 失败: %v，将使用内存缓存", opts.Addr, opts.DB, err)
		_ = rdb.Close()
		return nil, nil
	}

	log.Printf("✅ 成功连接到 Redis (%s, DB %d)", opts.Addr, opts.DB)
	return rdb, nil
}
