package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
	"github.com/anzhiyu-c/anheyu-posts/pkg/util"
)

// RequestIDHeader 请求 ID 的响应头
const RequestIDHeader = "X-Request-ID"

// RequestIDKey 请求 ID 在 gin.Context 中的键
const RequestIDKey = response.RequestIDKey

// RequestID 为每个请求分配 ID，客户端传入的合法 UUID 会被沿用
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog 记录每个请求的方法、路径、状态码和耗时，debug 为 false 时只记录错误响应
func AccessLog(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if !debug && status < 500 {
			return
		}
		log.Printf("[Access] %s %s %d %s request_id=%s ip=%s",
			c.Request.Method, c.Request.URL.RequestURI(), status, time.Since(start), c.GetString(RequestIDKey), util.GetRealClientIP(c))
	}
}
