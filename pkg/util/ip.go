// pkg/util/ip.go
package util

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIPHeaders 按优先级排列的代理头部
// 支持的 CDN: Cloudflare, 腾讯云 EdgeOne, 阿里云 CDN/ESA 等
var clientIPHeaders = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
	"EO-Connecting-IP",
	"Ali-CDN-Real-IP",
	"True-Client-IP",
}

// GetRealClientIP 获取客户端真实IP地址，头部都无效时回退到 RemoteAddr
func GetRealClientIP(c *gin.Context) string {
	for _, header := range clientIPHeaders {
		value := c.GetHeader(header)
		if value == "" {
			continue
		}
		// 格式可能为：client, proxy1, proxy2，取第一个
		if ip := normalizeIP(strings.Split(value, ",")[0]); ip != "" {
			return ip
		}
	}

	if ip := normalizeIP(c.Request.RemoteAddr); ip != "" {
		return ip
	}
	return c.Request.RemoteAddr
}

// normalizeIP 去掉端口并校验格式，无效时返回空串
func normalizeIP(value string) string {
	value = strings.TrimSpace(value)
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	if net.ParseIP(value) == nil {
		return ""
	}
	return value
}
