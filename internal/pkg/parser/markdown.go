/*
 * @Description: 文章摘要的 Markdown 渲染
 * @Author: 安知鱼
 * @Date: 2026-09-05 10:21:09
 * @LastEditTime: 2026-10-09 18:03:27
 * @LastEditors: 安知鱼
 */
package parser

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/strutil"
)

var mdParser goldmark.Markdown
var policy *bluemonday.Policy

func init() {
	mdParser = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // 表格、删除线、任务列表、自动链接
			extension.Typographer, // 美化排版
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(), // 原始 HTML 交给 bluemonday 清理
		),
	)

	policy = bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	// 内容源中的链接一律新窗口打开
	policy.AddTargetBlankToFullyQualifiedLinks(true)
}

// MarkdownToHTML 将 Markdown 字符串转换为安全的 HTML 字符串
func MarkdownToHTML(mdContent string) (string, error) {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(mdContent), &buf); err != nil {
		return "", fmt.Errorf("渲染 Markdown 失败: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// MarkdownToText 将 Markdown 渲染后去掉全部标签，得到单行纯文本
func MarkdownToText(mdContent string) (string, error) {
	rendered, err := MarkdownToHTML(mdContent)
	if err != nil {
		return "", err
	}
	return strutil.CollapseWhitespace(StripHTML(rendered)), nil
}

// Excerpt 生成文章卡片的摘要 HTML。
// 优先渲染 excerpt；为空时从正文提取纯文本并截断到 maxLength 个字符。
func Excerpt(excerpt, body string, maxLength int) (template.HTML, error) {
	if strings.TrimSpace(excerpt) != "" {
		rendered, err := MarkdownToHTML(excerpt)
		if err != nil {
			return "", err
		}
		return template.HTML(rendered), nil
	}

	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	text, err := MarkdownToText(body)
	if err != nil {
		return "", err
	}
	return template.HTML("<p>" + template.HTMLEscapeString(strutil.Truncate(text, maxLength)) + "</p>"), nil
}
