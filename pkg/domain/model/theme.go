/*
 * @Description: 内容源中的主题模型，每个主题节点携带一组标签
 * @Author: 安知鱼
 * @Date: 2026-09-03 14:52:06
 * @LastEditTime: 2026-09-21 17:30:44
 * @LastEditors: 安知鱼
 */
package model

// Theme 内容源中的一个主题文档，Data 为该主题下的标签名列表
type Theme struct {
	ID   string     `json:"id"`
	Data []string   `json:"data"`
	Sys  SystemInfo `json:"_sys"`
}

// ThemeEdge 主题连接中的一条边
type ThemeEdge struct {
	Node *Theme `json:"node"`
}

// ThemeConnection 主题连接
type ThemeConnection struct {
	TotalCount int         `json:"totalCount"`
	Edges      []ThemeEdge `json:"edges"`
}

// ThemeConnectionData GraphQL 响应中的 data 字段
type ThemeConnectionData struct {
	ThemeConnection *ThemeConnection `json:"themeConnection"`
}

// ThemeConnectionResult 主题查询的完整结果
type ThemeConnectionResult struct {
	Data      ThemeConnectionData    `json:"data"`
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}
