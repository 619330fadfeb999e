/*
 * @Description: 订阅源服务
 * @Author: 安知鱼
 * @Date: 2026-09-10 09:30:00
 * @LastEditTime: 2026-10-17 10:40:26
 * @LastEditors: 安知鱼
 */
package rss

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
	post_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/post"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/utility"
)

// ErrBaseURLRequired 既没有配置站点地址，请求中也无法推断
var ErrBaseURLRequired = errors.New("无法确定站点地址")

// Service 订阅源服务接口
type Service interface {
	// GenerateFeed 生成订阅源，文章内容走缓存，链接按 opts.BaseURL 拼接
	GenerateFeed(ctx context.Context, opts *RSSOptions) (*Feed, error)
	// Render 按格式序列化订阅源
	Render(feed *Feed, format Format) (string, error)
	// WarmCache 预取指定标签的订阅源内容
	WarmCache(ctx context.Context, tag string) error
	// InvalidateCache 清除订阅源缓存
	InvalidateCache(ctx context.Context) error
}

type service struct {
	postSvc  post_service.Service
	cacheSvc utility.CacheService
	site     SiteInfo
}

// NewService 创建订阅源服务
func NewService(postSvc post_service.Service, cacheSvc utility.CacheService, site SiteInfo) Service {
	return &service{
		postSvc:  postSvc,
		cacheSvc: cacheSvc,
		site:     site,
	}
}

const (
	rssCacheTTL       = time.Hour
	defaultItemCount  = 20
	maxCachedItems    = 50
	descriptionLength = 200
)

// FeedCacheKey 返回指定标签订阅源内容的缓存键
func FeedCacheKey(tag string) string {
	if tag == "" {
		return constant.CacheKeyPrefixRSS + constant.CacheAllTagsMarker
	}
	return constant.CacheKeyPrefixRSS + url.QueryEscape(tag)
}

func (s *service) GenerateFeed(ctx context.Context, opts *RSSOptions) (*Feed, error) {
	if opts == nil {
		opts = &RSSOptions{}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(s.site.URL, "/")
	}
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	count := opts.ItemCount
	if count <= 0 {
		count = defaultItemCount
	}
	buildTime := opts.BuildTime
	if buildTime.IsZero() {
		buildTime = time.Now()
	}

	snap, err := s.snapshot(ctx, opts.Tag)
	if err != nil {
		return nil, err
	}

	feed := &Feed{
		Feed: &feeds.Feed{
			Title:       snap.Title,
			Link:        &feeds.Link{Href: baseURL},
			Description: snap.Description,
			Id:          selfLink(baseURL, snap.Tag),
			Created:     buildTime,
			Updated:     buildTime,
		},
		Tag: snap.Tag,
	}
	for _, it := range snap.Items {
		if len(feed.Items) >= count {
			break
		}
		link := baseURL + it.Path
		item := &feeds.Item{
			Title:       it.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			IsPermaLink: "true",
			Description: it.Description,
			Created:     it.PublishedAt,
		}
		if it.Author != "" {
			item.Author = &feeds.Author{Name: it.Author}
		}
		feed.Add(item)
		feed.Categories = append(feed.Categories, it.Categories)
	}
	return feed, nil
}

func (s *service) WarmCache(ctx context.Context, tag string) error {
	_, err := s.snapshot(ctx, tag)
	return err
}

// InvalidateCache 清除所有标签的订阅源缓存
func (s *service) InvalidateCache(ctx context.Context) error {
	_, err := utility.DeleteByPattern(ctx, s.cacheSvc, constant.CacheKeyPrefixRSS+"*")
	return err
}

func (s *service) Render(feed *Feed, format Format) (string, error) {
	var (
		out string
		err error
	)
	switch format {
	case FormatAtom:
		out, err = feed.ToAtom()
	case FormatJSON:
		jf := (&feeds.JSON{Feed: feed.Feed}).JSONFeed()
		jf.Language = "zh-CN"
		jf.FeedUrl = feed.Id
		for i, item := range jf.Items {
			item.Tags = feed.categoriesAt(i)
		}
		out, err = jf.ToJSON()
	default:
		rf := (&feeds.Rss{Feed: feed.Feed}).RssFeed()
		rf.Language = "zh-CN"
		rf.Category = feed.Tag
		// RSS 条目只带一个 category，取第一个标签
		for i, item := range rf.Items {
			if tags := feed.categoriesAt(i); len(tags) > 0 {
				item.Category = tags[0]
			}
		}
		out, err = feeds.ToXML(rf)
	}
	if err != nil {
		return "", fmt.Errorf("生成 %s 订阅源失败: %w", format, err)
	}
	return out, nil
}

func (f *Feed) categoriesAt(i int) []string {
	if i < len(f.Categories) {
		return f.Categories[i]
	}
	return nil
}

// snapshot 读取或构建与站点地址无关的订阅源内容
func (s *service) snapshot(ctx context.Context, tag string) (*FeedSnapshot, error) {
	cacheKey := FeedCacheKey(tag)

	var cached FeedSnapshot
	if found, err := utility.GetJSON(ctx, s.cacheSvc, cacheKey, &cached); err != nil {
		log.Printf("[RSS Service] %v", err)
	} else if found {
		return &cached, nil
	}

	page, err := s.postSvc.GetPostsPage(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}

	title := s.site.Name
	if tag != "" {
		title = fmt.Sprintf("%s · %s", s.site.Name, tag)
	}
	snap := &FeedSnapshot{
		Tag:         tag,
		Title:       title,
		Description: s.site.Description,
		Items:       make([]FeedItem, 0),
	}
	if page != nil {
		for _, p := range page.Posts.Connection().Nodes() {
			if len(snap.Items) >= maxCachedItems {
				break
			}
			snap.Items = append(snap.Items, buildFeedItem(p))
		}
	}

	if err := utility.SetJSON(ctx, s.cacheSvc, cacheKey, snap, rssCacheTTL); err != nil {
		log.Printf("[RSS Service] %v", err)
	}
	return snap, nil
}

func buildFeedItem(p *model.Post) FeedItem {
	item := FeedItem{
		ID:          p.ID,
		Title:       p.Title,
		Path:        post_service.PostLink(p),
		Description: postDescription(p),
		Author:      p.Author,
		Categories:  p.Tags,
	}
	if t, ok := p.PublishedAt(); ok {
		item.PublishedAt = t
	}
	return item
}

// postDescription 优先使用摘要，否则从正文提取
func postDescription(p *model.Post) string {
	source := p.Excerpt
	if strings.TrimSpace(source) == "" {
		source = p.Body
	}
	if strings.TrimSpace(source) == "" {
		return ""
	}
	text, err := parser.MarkdownToText(source)
	if err != nil {
		log.Printf("[RSS Service] 提取文章 %s 描述失败: %v", p.ID, err)
		return ""
	}
	return strutil.Truncate(text, descriptionLength)
}

func selfLink(baseURL, tag string) string {
	link := baseURL + "/rss.xml"
	if tag != "" {
		link += "?tag=" + url.QueryEscape(tag)
	}
	return link
}
