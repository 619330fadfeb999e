/*
 * @Description: 订阅源处理器
 * @Author: 安知鱼
 * @Date: 2026-09-10 10:02:31
 * @LastEditTime: 2026-10-17 11:05:14
 * @LastEditors: 安知鱼
 */
package rss

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/rss"
	"github.com/anzhiyu-c/anheyu-posts/pkg/util"
)

// Handler 订阅源处理器
type Handler struct {
	rssService rss.Service
	siteURL    string
}

// NewHandler 创建订阅源处理器，siteURL 为空时从请求推断
func NewHandler(rssService rss.Service, siteURL string) *Handler {
	return &Handler{
		rssService: rssService,
		siteURL:    strings.TrimRight(siteURL, "/"),
	}
}

// GetRSSFeed 获取 RSS feed
// @Summary      获取RSS订阅源
// @Description  获取网站的RSS 2.0订阅源，可按标签筛选
// @Tags         辅助工具
// @Produce      xml
// @Param        tag  query  string  false  "标签"
// @Success      200  {string}  string  "RSS XML内容"
// @Failure      502  {object}  response.Response  "内容源不可用"
// @Failure      500  {object}  response.Response  "生成RSS feed失败"
// @Router       /rss.xml [get]
func (h *Handler) GetRSSFeed(c *gin.Context) {
	h.serve(c, rss.FormatRSS)
}

// GetAtomFeed 获取 Atom feed
// @Summary      获取Atom订阅源
// @Tags         辅助工具
// @Produce      xml
// @Param        tag  query  string  false  "标签"
// @Success      200  {string}  string  "Atom XML内容"
// @Router       /atom.xml [get]
func (h *Handler) GetAtomFeed(c *gin.Context) {
	h.serve(c, rss.FormatAtom)
}

// GetJSONFeed 获取 JSON Feed
// @Summary      获取JSON Feed订阅源
// @Tags         辅助工具
// @Produce      json
// @Param        tag  query  string  false  "标签"
// @Success      200  {string}  string  "JSON Feed内容"
// @Router       /feed.json [get]
func (h *Handler) GetJSONFeed(c *gin.Context) {
	h.serve(c, rss.FormatJSON)
}

func (h *Handler) serve(c *gin.Context, format rss.Format) {
	opts := &rss.RSSOptions{
		Tag:       c.Query("tag"),
		ItemCount: 20,
		BaseURL:   util.SiteBaseURL(c, h.siteURL),
		BuildTime: time.Now(),
	}

	feed, err := h.rssService.GenerateFeed(c.Request.Context(), opts)
	if err != nil {
		log.Printf("[RSS Handler] 生成订阅源失败: %v", err)
		response.FailWithError(c, err, "生成订阅源失败")
		return
	}

	content, err := h.rssService.Render(feed, format)
	if err != nil {
		log.Printf("[RSS Handler] %v", err)
		response.Fail(c, http.StatusInternalServerError, "生成订阅源失败")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Last-Modified", opts.BuildTime.UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, format.ContentType(), []byte(content))
}
