/*
 * @Description: 路由注册
 * @Author: 安知鱼
 * @Date: 2026-09-06 11:30:55
 * @LastEditTime: 2026-10-13 10:26:37
 * @LastEditors: 安知鱼
 */
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/internal/app/middleware"
	posts_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/posts"
	rss_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/rss"
	sitemap_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/sitemap"
	version_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/version"
	webhook_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/webhook"
)

// NoCacheMiddleware 确保 API 响应不会被 CDN 缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}

// Options 路由层的可配置项
type Options struct {
	WebhookSecret      string
	RateLimitPerMinute int
	RateLimitBurst     int
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	postsHandler   *posts_handler.Handler
	rssHandler     *rss_handler.Handler
	sitemapHandler *sitemap_handler.Handler
	webhookHandler *webhook_handler.Handler
	versionHandler *version_handler.Handler
	opts           Options
}

// NewRouter 是 Router 的构造函数
func NewRouter(
	postsHandler *posts_handler.Handler,
	rssHandler *rss_handler.Handler,
	sitemapHandler *sitemap_handler.Handler,
	webhookHandler *webhook_handler.Handler,
	versionHandler *version_handler.Handler,
	opts Options,
) *Router {
	return &Router{
		postsHandler:   postsHandler,
		rssHandler:     rssHandler,
		sitemapHandler: sitemapHandler,
		webhookHandler: webhookHandler,
		versionHandler: versionHandler,
		opts:           opts,
	}
}

// Setup 将所有路由注册到 Gin 引擎上
func (r *Router) Setup(engine *gin.Engine) {
	limiter := middleware.CustomRateLimit(r.opts.RateLimitPerMinute, r.opts.RateLimitBurst)

	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/posts")
	})

	// --- 页面与订阅源 ---
	engine.GET("/posts", limiter, r.postsHandler.PostsPage)
	engine.GET("/rss.xml", limiter, r.rssHandler.GetRSSFeed)
	engine.GET("/feed.xml", limiter, r.rssHandler.GetRSSFeed)
	engine.GET("/atom.xml", limiter, r.rssHandler.GetAtomFeed)
	engine.GET("/feed.json", limiter, r.rssHandler.GetJSONFeed)
	engine.GET("/sitemap.xml", limiter, r.sitemapHandler.GetSitemap)
	engine.GET("/robots.txt", r.sitemapHandler.GetRobots)

	// --- API ---
	apiGroup := engine.Group("/api")
	apiGroup.Use(NoCacheMiddleware())
	{
		apiGroup.GET("/posts", limiter, r.postsHandler.ListPosts)
		apiGroup.GET("/tags", limiter, r.postsHandler.ListTags)

		apiGroup.GET("/version", r.versionHandler.GetVersion)
		apiGroup.GET("/version/string", r.versionHandler.GetVersionString)

		cmsGroup := apiGroup.Group("/cms")
		{
			cmsGroup.POST("/webhook", middleware.WebhookAuth(r.opts.WebhookSecret), r.webhookHandler.Notify)
		}
	}
}
