/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-10-17 10:35:28
 * @LastEditTime: 2026-09-12 16:15:28
 * @LastEditors: 安知鱼
 */
// anheyu-posts/cmd/server/app.go
package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/anheyu-posts/internal/app/listener"
	"github.com/anzhiyu-c/anheyu-posts/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-posts/internal/app/task"
	"github.com/anzhiyu-c/anheyu-posts/internal/infra/cms"
	"github.com/anzhiyu-c/anheyu-posts/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-posts/internal/infra/router"
	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-posts/pkg/config"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/repository"
	posts_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/posts"
	rss_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/rss"
	sitemap_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/sitemap"
	version_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/version"
	webhook_handler "github.com/anzhiyu-c/anheyu-posts/pkg/handler/webhook"
	post_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/post"
	rss_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/rss"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/utility"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg        *config.Config
	engine     *gin.Engine
	scheduler  *task.Scheduler
	appVersion string
	cacheSvc   utility.CacheService
	eventBus   *event.EventBus
	postSvc    post_service.Service
	rssSvc     rss_service.Service
}

func (a *App) PrintBanner() {
	banner := `

       █████╗ ███╗   ██╗███████╗██╗  ██╗██╗██╗   ██╗██╗   ██╗
      ██╔══██╗████╗  ██║╚══███╔╝██║  ██║██║╚██╗ ██╔╝██║   ██║
      ███████║██╔██╗ ██║  ███╔╝ ███████║██║ ╚████╔╝ ██║   ██║
      ██╔══██║██║╚██╗██║ ███╔╝  ██╔══██║██║  ╚██╔╝  ██║   ██║
      ██║  ██║██║ ╚████║███████╗██║  ██║██║   ██║   ╚██████╔╝
      ╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝  ╚═╝╚═╝   ╚═╝    ╚═════╝

`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Anheyu Posts - Version: %s", version.GetVersionString())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp() (*App, func(), error) {
	// 在初始化早期获取版本信息
	appVersion := version.GetVersion()

	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	debug := cfg.GetBool(config.KeyServerDebug)

	// --- Phase 2: 初始化基础设施 ---
	// 尝试连接 Redis（如果失败，将自动降级到内存缓存）
	redisClient, err := database.NewRedisClient(context.Background(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("redis 初始化失败: %w", err)
	}
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)
	eventBus := event.NewEventBus()

	// 临时cleanup函数，后面会被增强版本替换
	tempCleanup := func() {
		eventBus.Shutdown()
		utility.StopCacheService(cacheSvc)
		closeRedis(redisClient)
	}

	// --- Phase 3: 初始化内容源 ---
	cmsClient, err := cms.NewClient(cms.OptionsFromConfig(cfg))
	if err != nil {
		return nil, tempCleanup, fmt.Errorf("内容源客户端初始化失败: %w", err)
	}
	var contentRepo repository.ContentRepository = cmsClient
	var contentCache repository.CacheInvalidator
	if ttl := cfg.GetDuration(config.KeyCacheTTL); ttl > 0 {
		cached := cms.NewCachedRepository(cmsClient, cacheSvc, ttl)
		contentRepo = cached
		contentCache = cached
		log.Printf("✅ 内容源查询缓存已启用，TTL: %s", ttl)
	} else {
		log.Println("⚠️  内容源查询缓存已关闭，每次请求都会直接查询内容源")
	}

	// --- Phase 4: 初始化业务逻辑层 ---
	siteURL := cfg.GetString(config.KeySiteURL)
	siteName := cfg.GetString(config.KeySiteName)
	siteDescription := cfg.GetString(config.KeySiteDescription)

	postSvc := post_service.NewService(contentRepo)
	rssSvc := rss_service.NewService(postSvc, cacheSvc, rss_service.SiteInfo{
		Name:        siteName,
		URL:         siteURL,
		Description: siteDescription,
	})
	sitemapSvc := sitemap.NewService(postSvc)

	// --- Phase 5: 初始化事件监听与后台任务 ---
	listener.NewCacheInvalidationListener(eventBus, contentCache, rssSvc)

	scheduler := task.NewSchedulerWithLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	if spec := cfg.GetString(config.KeyTaskWarmupSpec); spec != "" {
		if err := scheduler.Register(spec, task.NewCacheWarmupJob(postSvc, rssSvc)); err != nil {
			return nil, tempCleanup, fmt.Errorf("注册缓存预热任务失败: %w", err)
		}
	}

	// --- Phase 6: 初始化表现层 (Handlers) ---
	postsHandler := posts_handler.NewHandler(postSvc, posts_handler.SiteInfo{
		Name:        siteName,
		Description: siteDescription,
	})
	rssHandler := rss_handler.NewHandler(rssSvc, siteURL)
	sitemapHandler := sitemap_handler.NewHandler(sitemapSvc, siteURL)
	webhookHandler := webhook_handler.NewHandler(eventBus)
	versionHandler := version_handler.NewHandler()

	// --- Phase 7: 初始化路由 ---
	appRouter := router.NewRouter(postsHandler, rssHandler, sitemapHandler, webhookHandler, versionHandler, router.Options{
		WebhookSecret:      cfg.GetString(config.KeyWebhookSecret),
		RateLimitPerMinute: cfg.GetInt(config.KeyRateLimitPerMinute),
		RateLimitBurst:     cfg.GetInt(config.KeyRateLimitBurst),
	})

	// --- Phase 8: 配置 Gin 引擎 ---
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, tempCleanup, fmt.Errorf("设置信任代理失败: %w", err)
	}
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog(debug))
	engine.Use(middleware.Cors())
	if err := router.SetupTemplates(engine); err != nil {
		return nil, tempCleanup, fmt.Errorf("加载页面模板失败: %w", err)
	}
	appRouter.Setup(engine)

	// 将所有初始化好的组件装配到 App 实例中
	app := &App{
		cfg:        cfg,
		engine:     engine,
		scheduler:  scheduler,
		appVersion: appVersion,
		cacheSvc:   cacheSvc,
		eventBus:   eventBus,
		postSvc:    postSvc,
		rssSvc:     rssSvc,
	}

	// 创建cleanup函数
	cleanup := func() {
		log.Println("执行清理操作：关闭事件总线与缓存...")
		eventBus.Shutdown()
		utility.StopCacheService(cacheSvc)
		closeRedis(redisClient)
	}

	return app, cleanup, nil
}

func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}
	log.Println("关闭 Redis 连接...")
	if err := client.Close(); err != nil {
		log.Printf("关闭 Redis 连接失败: %v", err)
	}
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

// CacheService 返回缓存服务实例
func (a *App) CacheService() utility.CacheService {
	return a.cacheSvc
}

// EventBus 返回事件总线实例
func (a *App) EventBus() *event.EventBus {
	return a.eventBus
}

// Version 返回应用版本号
func (a *App) Version() string {
	return a.appVersion
}

func (a *App) PostService() post_service.Service {
	return a.postSvc
}

func (a *App) RSSService() rss_service.Service {
	return a.rssSvc
}

func (a *App) Run() error {
	a.scheduler.Start()
	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}

func (a *App) Stop() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
}
