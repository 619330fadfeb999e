package util

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// SiteBaseURL 返回站点根地址，configured 为空时根据请求的协议和 Host 推断。
// X-Forwarded-Proto 只接受 http 和 https。
func SiteBaseURL(c *gin.Context, configured string) string {
	if configured = strings.TrimRight(configured, "/"); configured != "" {
		return configured
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto"))); proto {
	case "http", "https":
		scheme = proto
	}

	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
