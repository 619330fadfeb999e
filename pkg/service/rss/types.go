/*
 * @Description: 订阅源类型定义
 * @Author: 安知鱼
 * @Date: 2026-09-10 09:30:00
 * @LastEditTime: 2026-10-17 10:12:40
 * @LastEditors: 安知鱼
 */
package rss

import (
	"time"

	"github.com/gorilla/feeds"
)

// Format 订阅源输出格式
type Format string

const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
	FormatJSON Format = "json"
)

// ContentType 返回该格式对应的响应类型
func (f Format) ContentType() string {
	switch f {
	case FormatAtom:
		return "application/atom+xml; charset=utf-8"
	case FormatJSON:
		return "application/feed+json; charset=utf-8"
	default:
		return "application/rss+xml; charset=utf-8"
	}
}

// FeedItem 缓存中的文章条目，链接只保存站内路径
type FeedItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// FeedSnapshot 与站点地址无关的订阅源内容，按标签缓存
type FeedSnapshot struct {
	Tag         string     `json:"tag"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Items       []FeedItem `json:"items"`
}

// Feed 一次请求生成的订阅源，链接均为绝对地址
type Feed struct {
	*feeds.Feed
	// Tag 当前筛选的标签
	Tag string
	// Categories 与 Items 一一对应的文章标签
	Categories [][]string
}

// RSSOptions 订阅源生成选项
type RSSOptions struct {
	// Tag 只输出带有该标签的文章，为空表示全部
	Tag string
	// ItemCount 返回的文章数量
	ItemCount int
	// BaseURL 站点基础 URL，为空时使用 SiteInfo.URL
	BaseURL string
	// BuildTime Feed 构建时间
	BuildTime time.Time
}

// SiteInfo 频道信息
type SiteInfo struct {
	Name        string
	URL         string
	Description string
}
