/*
 * @Description: 文章列表页视图模型
 * @Author: 安知鱼
 * @Date: 2026-09-03 15:20:11
 * @LastEditTime: 2026-10-17 11:52:36
 * @LastEditors: 安知鱼
 */
package model

import "html/template"

// PostCard 文章列表中单张卡片的展示数据。
// DisplayDate 为按东八区格式化后的日期，Date 无法解析时原样保留。
type PostCard struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Link        string        `json:"link"`
	Date        string        `json:"date,omitempty"`
	DisplayDate string        `json:"display_date,omitempty"`
	Author      string        `json:"author,omitempty"`
	Tags        []string      `json:"tags"`
	ExcerptHTML template.HTML `json:"excerpt_html"`
}

// PostsPage 文章列表页的视图模型
type PostsPage struct {
	// ActiveTag 当前筛选的标签，为空表示全部
	ActiveTag string `json:"active_tag"`
	// AllTags 由所有主题的标签展开得到
	AllTags []string `json:"all_tags"`
	// Posts 内容源返回的原始结果，原样交给布局和前端组件
	Posts *PostConnectionResult `json:"posts"`
	// Cards 服务端渲染使用的卡片
	Cards []PostCard `json:"cards"`
}

// TagSummary 标签统计
type TagSummary struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}
