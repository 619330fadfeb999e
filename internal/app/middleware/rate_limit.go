/*
 * @Description: 频率限制中间件
 * @Author: 安知鱼
 * @Date: 2026-09-09 10:14:00
 * @LastEditTime: 2026-10-03 15:59:28
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
	"github.com/anzhiyu-c/anheyu-posts/pkg/util"
)

// 超过该时长未访问的限流器会被清理
const limiterIdleTimeout = 10 * time.Minute

// ipRateLimiter 用于存储每个IP地址的限流器
type ipRateLimiter struct {
	limiters map[string]*limiterInfo
	mu       sync.Mutex
	// 每个IP每分钟允许的请求数
	requestsPerMinute int
	// 突发请求数（允许短时间内的突发流量）
	burst int
}

// limiterInfo 存储限流器及其最后访问时间
type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// newIPRateLimiter 创建一个新的IP限流器
func newIPRateLimiter(requestsPerMinute, burst int) *ipRateLimiter {
	if burst <= 0 {
		burst = requestsPerMinute
	}
	return &ipRateLimiter{
		limiters:          make(map[string]*limiterInfo),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
	}
}

// getLimiter 获取指定IP的限流器，顺带清理长时间未使用的条目
func (i *ipRateLimiter) getLimiter(ip string, now time.Time) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	info, exists := i.limiters[ip]
	if !exists {
		if len(i.limiters) > 0 && len(i.limiters)%256 == 0 {
			i.evictIdle(now)
		}
		// 每分钟补充 requestsPerMinute 个令牌
		limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(i.requestsPerMinute)), i.burst)
		info = &limiterInfo{limiter: limiter}
		i.limiters[ip] = info
	}
	info.lastAccessed = now

	return info.limiter
}

func (i *ipRateLimiter) evictIdle(now time.Time) {
	for ip, info := range i.limiters {
		if now.Sub(info.lastAccessed) > limiterIdleTimeout {
			delete(i.limiters, ip)
		}
	}
}

// CustomRateLimit 创建一个按 IP 计数的频率限制中间件
// requestsPerMinute: 每分钟允许的请求数，<= 0 时不限流
// burst: 突发请求数
func CustomRateLimit(requestsPerMinute, burst int) gin.HandlerFunc {
	if requestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := newIPRateLimiter(requestsPerMinute, burst)

	return func(c *gin.Context) {
		ipLimiter := limiter.getLimiter(util.GetRealClientIP(c), time.Now())

		if !ipLimiter.Allow() {
			c.Header("Retry-After", "60")
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
