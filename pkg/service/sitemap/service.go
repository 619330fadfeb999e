/*
 * @Description: 站点地图服务
 * @Author: 安知鱼
 * @Date: 2025-09-21 00:00:00
 * @LastEditTime: 2026-10-11 21:20:45
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	smap "github.com/snabb/sitemap"

	post_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/post"
)

// Service 站点地图服务接口
type Service interface {
	// GenerateSitemap 生成站点地图，包含列表页、各标签页和每篇文章
	GenerateSitemap(ctx context.Context, baseURL string) (*smap.Sitemap, error)
	// GenerateXML 将站点地图序列化为带 XML 声明的文本
	GenerateXML(sm *smap.Sitemap) (string, error)
	// GenerateRobots 生成robots.txt
	GenerateRobots(baseURL string) string
}

type service struct {
	postSvc post_service.Service
	now     func() time.Time
}

// NewService 创建站点地图服务
func NewService(postSvc post_service.Service) Service {
	return &service{postSvc: postSvc, now: time.Now}
}

func (s *service) GenerateSitemap(ctx context.Context, baseURL string) (*smap.Sitemap, error) {
	baseURL = strings.TrimRight(baseURL, "/")

	page, err := s.postSvc.GetPostsPage(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}

	items := []Item{{
		URL:        baseURL + "/posts",
		ChangeFreq: smap.Daily,
		Priority:   1.0,
	}}
	if page == nil {
		return toSitemap(items), nil
	}

	for _, tag := range page.AllTags {
		items = append(items, Item{
			URL:        baseURL + "/posts?tag=" + url.QueryEscape(tag),
			ChangeFreq: smap.Weekly,
			Priority:   0.5,
		})
	}

	now := s.now()
	for _, p := range page.Posts.Connection().Nodes() {
		item := Item{
			URL:        baseURL + post_service.PostLink(p),
			ChangeFreq: smap.Monthly,
			Priority:   0.7,
		}
		// 根据发布时间确定优先级和更新频率
		if published, ok := p.PublishedAt(); ok {
			item.LastModified = published
			switch age := now.Sub(published); {
			case age < 7*24*time.Hour:
				item.ChangeFreq, item.Priority = smap.Daily, 0.9
			case age < 30*24*time.Hour:
				item.ChangeFreq, item.Priority = smap.Weekly, 0.8
			case age > 365*24*time.Hour:
				item.ChangeFreq, item.Priority = smap.Yearly, 0.6
			}
		}
		items = append(items, item)
	}

	return toSitemap(items), nil
}

func toSitemap(items []Item) *smap.Sitemap {
	sm := smap.New()
	for _, item := range items {
		sm.Add(item.toURL())
	}
	return sm
}

func (s *service) GenerateXML(sm *smap.Sitemap) (string, error) {
	var b strings.Builder
	if _, err := sm.WriteTo(&b); err != nil {
		return "", fmt.Errorf("生成站点地图 XML 失败: %w", err)
	}
	return b.String(), nil
}

func (s *service) GenerateRobots(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")

	return fmt.Sprintf(`User-agent: *
Allow: /

# 禁止访问接口
Disallow: /api/

# 站点地图
Sitemap: %s/sitemap.xml
`, baseURL)
}
