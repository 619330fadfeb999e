/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-03 15:10:22
 * @LastEditTime: 2026-09-03 15:10:22
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
)

// ContentRepository 定义了从内容源读取文章和主题的接口。
// filter 为 nil 时查询全部文章。
type ContentRepository interface {
	PostConnection(ctx context.Context, filter *model.PostFilter) (*model.PostConnectionResult, error)
	ThemeConnection(ctx context.Context) (*model.ThemeConnectionResult, error)
}

// CacheInvalidator 由带缓存的仓库实现，用于在内容变更后清除缓存
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
