/*
 * @Description: 文章列表页处理器
 * @Author: 安知鱼
 * @Date: 2026-09-06 11:08:44
 * @LastEditTime: 2026-10-13 09:52:17
 * @LastEditors: 安知鱼
 */
package posts

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
	post_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/post"
)

// PageTemplate 文章列表页使用的模板名
const PageTemplate = "layout.html"

// 页面浏览器缓存时间（秒）
const pageMaxAge = 60

// Handler 文章列表页处理器
type Handler struct {
	postSvc post_service.Service
	site    SiteInfo
}

// SiteInfo 页面头部使用的站点信息
type SiteInfo struct {
	Name        string
	Description string
}

// PageView 传给页面模板的数据
type PageView struct {
	Title       string
	SiteName    string
	Description string
	FeedURL     string
	ActiveTag   string
	AllTags     []string
	Cards       []model.PostCard
	// RawPageData 布局组件接收的原始文章数据
	RawPageData model.PostConnectionData
	// Props 前端展示组件的属性：data、query、variables
	Props *model.PostConnectionResult
}

// NewHandler 创建文章列表页处理器
func NewHandler(postSvc post_service.Service, site SiteInfo) *Handler {
	return &Handler{
		postSvc: postSvc,
		site:    site,
	}
}

// tagParam 读取可选的 tag 查询参数，只有空字符串视为未提供，空白按字面值筛选
func tagParam(c *gin.Context) string {
	return c.Query("tag")
}

// PostsPage 服务端渲染文章列表页
// @Summary      文章列表页
// @Description  按标签筛选文章并渲染页面；内容源没有返回文章时响应 204
// @Tags         文章
// @Produce      html
// @Param        tag  query  string  false  "标签"
// @Success      200  {string}  string  "HTML 页面"
// @Success      204  "无内容"
// @Success      304  "未修改"
// @Failure      502  {object}  response.Response  "内容源不可用"
// @Failure      500  {object}  response.Response  "服务器内部错误"
// @Router       /posts [get]
func (h *Handler) PostsPage(c *gin.Context) {
	tag := tagParam(c)

	page, err := h.postSvc.GetPostsPage(c.Request.Context(), tag)
	if err != nil {
		handleServiceError(c, "获取文章列表失败", err)
		return
	}
	if page == nil {
		c.Status(http.StatusNoContent)
		return
	}

	etag := generateContentETag(page)
	if handleConditionalRequest(c, etag) {
		return
	}
	setPageCacheHeaders(c, etag, pageMaxAge)

	c.HTML(http.StatusOK, PageTemplate, h.buildView(page))
}

// ListPosts 以 JSON 返回文章列表页数据
// @Summary      文章列表
// @Description  返回与文章列表页相同的数据
// @Tags         文章
// @Produce      json
// @Param        tag  query  string  false  "标签"
// @Success      200  {object}  response.Response{data=model.PostsPage}  "获取成功"
// @Success      204  "无内容"
// @Failure      502  {object}  response.Response  "内容源不可用"
// @Failure      500  {object}  response.Response  "服务器内部错误"
// @Router       /api/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, err := h.postSvc.GetPostsPage(c.Request.Context(), tagParam(c))
	if err != nil {
		handleServiceError(c, "获取文章列表失败", err)
		return
	}
	if page == nil {
		c.Status(http.StatusNoContent)
		return
	}
	response.Success(c, page, "获取成功")
}

// ListTags 返回全部标签及文章数
// @Summary      标签列表
// @Description  返回所有主题标签及其文章数，tag 参数用于标记当前选中的标签
// @Tags         文章
// @Produce      json
// @Param        tag  query  string  false  "当前标签"
// @Success      200  {object}  response.Response{data=[]model.TagSummary}  "获取成功"
// @Failure      502  {object}  response.Response  "内容源不可用"
// @Failure      500  {object}  response.Response  "服务器内部错误"
// @Router       /api/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.postSvc.ListTags(c.Request.Context(), tagParam(c))
	if err != nil {
		handleServiceError(c, "获取标签失败", err)
		return
	}
	response.Success(c, tags, "获取成功")
}

func (h *Handler) buildView(page *model.PostsPage) PageView {
	title := h.site.Name
	feedURL := "/rss.xml"
	if page.ActiveTag != "" {
		title = fmt.Sprintf("%s - %s", page.ActiveTag, h.site.Name)
		feedURL += "?tag=" + url.QueryEscape(page.ActiveTag)
	}

	return PageView{
		Title:       title,
		SiteName:    h.site.Name,
		Description: h.site.Description,
		FeedURL:     feedURL,
		ActiveTag:   page.ActiveTag,
		AllTags:     page.AllTags,
		Cards:       page.Cards,
		RawPageData: page.Posts.Data,
		Props:       page.Posts,
	}
}

// handleServiceError 内容源错误映射为 502，其余为 500
func handleServiceError(c *gin.Context, message string, err error) {
	log.Printf("[Posts Handler] %s: %v", message, err)
	response.FailWithError(c, err, message)
}
