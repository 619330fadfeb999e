package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetRealClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded first", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.2:5000", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.2:5000", "198.51.100.7"},
		{"invalid header skipped", map[string]string{"X-Forwarded-For": "unknown", "CF-Connecting-IP": "2001:db8::1"}, "10.0.0.2:5000", "2001:db8::1"},
		{"forwarded with port", map[string]string{"X-Forwarded-For": "203.0.113.9:443"}, "10.0.0.2:5000", "203.0.113.9"},
		{"remote addr", nil, "192.0.2.44:1234", "192.0.2.44"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetRealClientIP(c))
		})
	}
}

func TestSiteBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://blog.local:8091/rss.xml", nil)

	assert.Equal(t, "https://blog.example.com", SiteBaseURL(c, "https://blog.example.com/"))
	assert.Equal(t, "http://blog.local:8091", SiteBaseURL(c, ""))

	c.Request.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://blog.local:8091", SiteBaseURL(c, ""))

	for _, proto := range []string{"javascript", "ftp", "https://evil.example"} {
		c.Request.Header.Set("X-Forwarded-Proto", proto)
		assert.Equal(t, "http://blog.local:8091", SiteBaseURL(c, ""), proto)
	}
}
