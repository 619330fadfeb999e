/*
 * @Description: 内容源中的文章模型
 * @Author: 安知鱼
 * @Date: 2026-09-03 14:20:31
 * @LastEditTime: 2026-10-10 09:48:12
 * @LastEditors: 安知鱼
 */
package model

import (
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/utils"
)

// --- 查询条件 ---

// StringFilter 字符串字段的等值筛选条件
type StringFilter struct {
	Eq string `json:"eq"`
}

// PostFilter 文章连接查询的筛选条件，序列化后为 {"tags":{"eq":"..."}}
type PostFilter struct {
	Tags *StringFilter `json:"tags,omitempty"`
}

// TagValue 返回筛选条件中的标签值，filter 为空时返回空字符串
func (f *PostFilter) TagValue() string {
	if f == nil || f.Tags == nil {
		return ""
	}
	return f.Tags.Eq
}

// --- 核心领域对象 (Domain Object) ---

// SystemInfo 内容源为每个文档附带的文件信息
type SystemInfo struct {
	Filename     string `json:"filename"`
	RelativePath string `json:"relativePath"`
}

// Post 内容源中的一篇文章
type Post struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Date    string     `json:"date,omitempty"`
	Author  string     `json:"author,omitempty"`
	Excerpt string     `json:"excerpt,omitempty"`
	Tags    []string   `json:"tags"`
	Body    string     `json:"body,omitempty"`
	Sys     SystemInfo `json:"_sys"`
}

// Slug 返回文章在站点中的路径标识，优先使用去掉扩展名的文件名
func (p *Post) Slug() string {
	if p == nil {
		return ""
	}
	if p.Sys.Filename != "" {
		return p.Sys.Filename
	}
	return p.ID
}

// 内容源中 date 字段可能出现的格式
var postDateLayouts = []struct {
	layout string
	// local 为 true 的格式不带时区，按东八区解析
	local bool
}{
	{time.RFC3339, false},
	{"2006-01-02T15:04:05.000Z", false},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02", true},
}

// PublishedAt 解析文章的 date 字段，无法识别时返回 false
func (p *Post) PublishedAt() (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}
	value := strings.TrimSpace(p.Date)
	if value == "" {
		return time.Time{}, false
	}
	for _, l := range postDateLayouts {
		loc := time.UTC
		if l.local {
			loc = utils.ChinaTimezone
		}
		if t, err := time.ParseInLocation(l.layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PostEdge 连接中的一条边
type PostEdge struct {
	Cursor string `json:"cursor,omitempty"`
	Node   *Post  `json:"node"`
}

// PageInfo 连接的分页信息
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
}

// PostConnection 文章连接
type PostConnection struct {
	TotalCount int        `json:"totalCount"`
	PageInfo   PageInfo   `json:"pageInfo"`
	Edges      []PostEdge `json:"edges"`
}

// Nodes 返回连接中所有非空的文章节点，保持原有顺序
func (c *PostConnection) Nodes() []*Post {
	if c == nil {
		return nil
	}
	nodes := make([]*Post, 0, len(c.Edges))
	for _, edge := range c.Edges {
		if edge.Node != nil {
			nodes = append(nodes, edge.Node)
		}
	}
	return nodes
}

// PostConnectionData GraphQL 响应中的 data 字段
type PostConnectionData struct {
	PostConnection *PostConnection `json:"postConnection"`
}

// PostConnectionResult 文章查询的完整结果，包含数据以及发出的查询和变量，
// 前端展示组件用它完成水合
type PostConnectionResult struct {
	Data      PostConnectionData     `json:"data"`
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Connection 安全地返回文章连接
func (r *PostConnectionResult) Connection() *PostConnection {
	if r == nil {
		return nil
	}
	return r.Data.PostConnection
}
