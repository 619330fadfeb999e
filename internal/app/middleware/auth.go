// internal/app/middleware/auth.go
package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
)

// WebhookAuth 校验内容源回调携带的 HS256 令牌，成功后把 Claims 放入上下文
func WebhookAuth(secret string) gin.HandlerFunc {
	secretKey := []byte(secret)
	return func(c *gin.Context) {
		if len(secretKey) == 0 {
			response.Fail(c, http.StatusServiceUnavailable, "未配置回调密钥")
			c.Abort()
			return
		}

		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			response.Fail(c, http.StatusUnauthorized, "请求未携带Token，无权限访问")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Fail(c, http.StatusUnauthorized, "Token格式不正确")
			c.Abort()
			return
		}

		claims, err := auth.ParseWebhookToken(parts[1], secretKey)
		if err != nil {
			log.Printf("[WebhookAuth] 回调令牌校验失败: %v", err)
			response.Fail(c, http.StatusUnauthorized, "无效或过期的Token")
			c.Abort()
			return
		}

		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}
