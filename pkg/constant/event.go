/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-05 18:07:37
 * @LastEditTime: 2026-09-05 18:07:49
 * @LastEditors: 安知鱼
 */
package constant

import "github.com/anzhiyu-c/anheyu-posts/internal/pkg/event"

// EventTopic 事件主题类型
type EventTopic = event.Topic

// 导出事件主题常量，供外部使用
const (
	// EventContentUpdated 内容源数据变更事件
	EventContentUpdated EventTopic = event.ContentUpdated
)
