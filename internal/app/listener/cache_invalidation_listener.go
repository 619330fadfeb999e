/*
 * @Description: 监听内容变更事件并清除相关缓存
 * @Author: 安知鱼
 * @Date: 2026-09-08 22:30:00
 * @LastEditTime: 2026-10-02 11:01:58
 * @LastEditors: 安知鱼
 */
package listener

import (
	"context"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/repository"
	rss_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/rss"
)

// 单次失效处理的超时时间
const invalidationTimeout = 10 * time.Second

// CacheInvalidationListener 监听 ContentUpdated 事件，清除内容源缓存和 RSS 缓存
type CacheInvalidationListener struct {
	contentCache repository.CacheInvalidator
	rssSvc       rss_service.Service
}

// NewCacheInvalidationListener 创建监听器并订阅 ContentUpdated 事件。
// contentCache 为 nil 表示内容源查询未启用缓存。
func NewCacheInvalidationListener(
	eventBus *event.EventBus,
	contentCache repository.CacheInvalidator,
	rssSvc rss_service.Service,
) *CacheInvalidationListener {
	l := &CacheInvalidationListener{
		contentCache: contentCache,
		rssSvc:       rssSvc,
	}
	eventBus.Subscribe(event.ContentUpdated, l.handleContentUpdated)
	return l
}

func (l *CacheInvalidationListener) handleContentUpdated(payload interface{}) {
	info, ok := payload.(event.ContentUpdatedPayload)
	if !ok {
		log.Printf("[CacheInvalidationListener] 错误：收到的ContentUpdated事件负载类型不正确: %T", payload)
		return
	}

	log.Printf("[CacheInvalidationListener] 收到内容变更事件 collection=%q reason=%q，开始清除缓存", info.Collection, info.Reason)
	l.Invalidate()
}

// Invalidate 同步清除所有缓存，错误只记录不返回
func (l *CacheInvalidationListener) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), invalidationTimeout)
	defer cancel()

	if l.contentCache != nil {
		if err := l.contentCache.Invalidate(ctx); err != nil {
			log.Printf("[CacheInvalidationListener] 错误: 清除内容源缓存失败: %v", err)
		}
	}
	if l.rssSvc != nil {
		if err := l.rssSvc.InvalidateCache(ctx); err != nil {
			log.Printf("[CacheInvalidationListener] 错误: 清除 RSS 缓存失败: %v", err)
		}
	}
}
