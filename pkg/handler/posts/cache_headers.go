package posts

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/version"
)

// generateContentETag 生成内容ETag
func generateContentETag(content interface{}) string {
	data, _ := json.Marshal(content)
	hash := md5.Sum(data)
	return fmt.Sprintf(`"posts-%x"`, hash)
}

// handleConditionalRequest 处理条件请求，命中时返回 304
func handleConditionalRequest(c *gin.Context, etag string) bool {
	ifNoneMatch := c.GetHeader("If-None-Match")
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			c.Header("ETag", etag)
			c.Status(http.StatusNotModified)
			return true
		}
	}
	return false
}

// setPageCacheHeaders 设置页面缓存策略（CDN 访问时缩短共享缓存时间）
func setPageCacheHeaders(c *gin.Context, etag string, maxAge int) {
	isCDN := c.GetHeader("CF-Ray") != "" || // Cloudflare
		c.GetHeader("X-Amz-Cf-Id") != "" || // CloudFront
		c.GetHeader("X-Cache") != "" ||
		c.GetHeader("X-Served-By") != "" // Fastly

	if isCDN {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d, must-revalidate, stale-while-revalidate=30", maxAge, maxAge/2))
	} else {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, must-revalidate", maxAge))
	}
	c.Header("ETag", etag)
	c.Header("Vary", "Accept-Encoding")
	c.Header("Cache-Tag", "post-list")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "SAMEORIGIN")
	c.Header("X-App-Version", version.GetVersion())
}
