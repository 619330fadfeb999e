/*
 * @Description: 文章列表页服务
 * @Author: 安知鱼
 * @Date: 2026-09-05 14:36:52
 * @LastEditTime: 2026-10-12 15:20:04
 * @LastEditors: 安知鱼
 */
package post

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/utils"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/repository"
)

// 卡片摘要的最大字符数
const excerptLength = 140

// Service 文章列表页服务接口
type Service interface {
	// GetPostsPage 按标签获取文章列表页数据，文章结果为空时返回 nil
	GetPostsPage(ctx context.Context, tag string) (*model.PostsPage, error)
	// ListTags 返回所有主题标签及其文章数
	ListTags(ctx context.Context, activeTag string) ([]model.TagSummary, error)
}

type service struct {
	repo repository.ContentRepository
}

// NewService 创建文章列表页服务
func NewService(repo repository.ContentRepository) Service {
	return &service{repo: repo}
}

// BuildFilter 根据标签构建文章筛选条件，标签为空时不筛选
func BuildFilter(tag string) *model.PostFilter {
	if tag == "" {
		return nil
	}
	return &model.PostFilter{Tags: &model.StringFilter{Eq: tag}}
}

// FlattenThemeTags 按主题顺序展开所有主题节点的标签，结果不为 nil
func FlattenThemeTags(themes *model.ThemeConnectionResult) []string {
	tags := make([]string, 0)
	if themes == nil || themes.Data.ThemeConnection == nil {
		return tags
	}
	for _, edge := range themes.Data.ThemeConnection.Edges {
		if edge.Node == nil {
			continue
		}
		tags = append(tags, edge.Node.Data...)
	}
	return tags
}

func (s *service) GetPostsPage(ctx context.Context, tag string) (*model.PostsPage, error) {
	posts, err := s.repo.PostConnection(ctx, BuildFilter(tag))
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}

	// 主题查询必须在文章查询之后
	themes, err := s.repo.ThemeConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取主题失败: %w", err)
	}

	allTags := FlattenThemeTags(themes)
	logTags(allTags)

	if posts == nil {
		return nil, nil
	}

	return &model.PostsPage{
		ActiveTag: tag,
		AllTags:   allTags,
		Posts:     posts,
		Cards:     buildCards(posts.Connection()),
	}, nil
}

func (s *service) ListTags(ctx context.Context, activeTag string) ([]model.TagSummary, error) {
	posts, err := s.repo.PostConnection(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}
	themes, err := s.repo.ThemeConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取主题失败: %w", err)
	}

	counts := make(map[string]int)
	for _, p := range posts.Connection().Nodes() {
		for _, t := range p.Tags {
			counts[t]++
		}
	}

	seen := make(map[string]struct{})
	summaries := make([]model.TagSummary, 0)
	for _, name := range FlattenThemeTags(themes) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		summaries = append(summaries, model.TagSummary{
			Name:   name,
			Count:  counts[name],
			Active: name == activeTag,
		})
	}
	return summaries, nil
}

func logTags(allTags []string) {
	out, err := json.MarshalIndent(allTags, "", "  ")
	if err != nil {
		log.Printf("[Posts Service] 序列化标签失败: %v", err)
		return
	}
	log.Printf("[Posts Service] allTags: %s", out)
}

func buildCards(conn *model.PostConnection) []model.PostCard {
	nodes := conn.Nodes()
	cards := make([]model.PostCard, 0, len(nodes))
	for _, p := range nodes {
		excerpt, err := parser.Excerpt(p.Excerpt, p.Body, excerptLength)
		if err != nil {
			log.Printf("[Posts Service] 渲染文章 %s 摘要失败: %v", p.ID, err)
		}
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		displayDate := p.Date
		if t, ok := p.PublishedAt(); ok {
			displayDate = utils.FormatDateInChina(t)
		}
		cards = append(cards, model.PostCard{
			ID:          p.ID,
			Title:       strings.TrimSpace(p.Title),
			Link:        PostLink(p),
			Date:        p.Date,
			DisplayDate: displayDate,
			Author:      p.Author,
			Tags:        tags,
			ExcerptHTML: excerpt,
		})
	}
	return cards
}

// PostLink 返回文章详情页的站内路径
func PostLink(p *model.Post) string {
	return "/posts/" + url.PathEscape(p.Slug())
}
