package parser

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var stripTagsPolicy = bluemonday.StripTagsPolicy()

// StripHTML 去掉所有标签并还原实体，返回纯文本
func StripHTML(htmlContent string) string {
	return html.UnescapeString(stripTagsPolicy.Sanitize(htmlContent))
}
