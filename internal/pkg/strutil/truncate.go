package strutil

import (
	"strings"
	"unicode/utf8"
)

// Truncate 安全地将UTF-8字符串截断到指定的长度，并在需要时添加省略号。
// maxLength <= 0 时不截断。
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:maxLength]), isSpace) + "..."
}

// CollapseWhitespace 把连续的空白字符（含换行）合并为单个空格
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
