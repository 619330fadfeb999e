/*
 * @Description: 站点地图处理器
 * @Author: 安知鱼
 * @Date: 2025-09-21 00:00:00
 * @LastEditTime: 2026-10-11 21:32:09
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-posts/pkg/util"
)

// Handler 站点地图处理器
type Handler struct {
	sitemapService sitemap.Service
	siteURL        string
}

// NewHandler 创建站点地图处理器，siteURL 为空时从请求推断
func NewHandler(sitemapService sitemap.Service, siteURL string) *Handler {
	return &Handler{
		sitemapService: sitemapService,
		siteURL:        strings.TrimRight(siteURL, "/"),
	}
}

// GetSitemap 获取站点地图
// @Summary      获取站点地图
// @Description  获取XML格式的站点地图，包含文章列表、标签页和全部文章
// @Tags         辅助工具
// @Produce      xml
// @Success      200  {string}  string  "XML格式的站点地图"
// @Failure      502  {string}  string  "内容源不可用"
// @Failure      500  {string}  string  "生成失败"
// @Router       /sitemap.xml [get]
func (h *Handler) GetSitemap(c *gin.Context) {
	sm, err := h.sitemapService.GenerateSitemap(c.Request.Context(), util.SiteBaseURL(c, h.siteURL))
	if err != nil {
		log.Printf("[Sitemap Handler] 生成站点地图失败: %v", err)
		c.String(constant.HTTPStatus(err), "生成站点地图失败")
		return
	}

	xmlContent, err := h.sitemapService.GenerateXML(sm)
	if err != nil {
		log.Printf("[Sitemap Handler] %v", err)
		c.String(http.StatusInternalServerError, "生成XML失败")
		return
	}

	// 站点地图可以缓存较长时间
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(xmlContent))
}

// GetRobots 获取robots.txt
// @Summary      获取robots.txt
// @Description  获取搜索引擎爬虫规则文件
// @Tags         辅助工具
// @Produce      plain
// @Success      200  {string}  string  "robots.txt内容"
// @Router       /robots.txt [get]
func (h *Handler) GetRobots(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.sitemapService.GenerateRobots(util.SiteBaseURL(c, h.siteURL))))
}
