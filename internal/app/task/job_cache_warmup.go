package task

import (
	"context"
	"errors"
	"sync"
	"time"

	post_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/post"
	rss_service "github.com/anzhiyu-c/anheyu-posts/pkg/service/rss"
)

// 单次预热的超时时间
const warmupTimeout = 30 * time.Second

// CacheWarmupJob 定期预取不带标签的文章列表、标签统计和订阅源，让缓存保持温热
type CacheWarmupJob struct {
	postSvc post_service.Service
	rssSvc  rss_service.Service

	mu      sync.Mutex
	lastErr error
}

// NewCacheWarmupJob 创建缓存预热任务，rssSvc 可以为 nil
func NewCacheWarmupJob(postSvc post_service.Service, rssSvc rss_service.Service) *CacheWarmupJob {
	return &CacheWarmupJob{postSvc: postSvc, rssSvc: rssSvc}
}

func (j *CacheWarmupJob) Name() string {
	return "CacheWarmupJob"
}

func (j *CacheWarmupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()

	err := j.warm(ctx)

	j.mu.Lock()
	j.lastErr = err
	j.mu.Unlock()
}

// LastError 返回最近一次执行的错误
func (j *CacheWarmupJob) LastError() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastErr
}

func (j *CacheWarmupJob) warm(ctx context.Context) error {
	var errs []error
	if _, err := j.postSvc.GetPostsPage(ctx, ""); err != nil {
		errs = append(errs, err)
	}
	if _, err := j.postSvc.ListTags(ctx, ""); err != nil {
		errs = append(errs, err)
	}
	if j.rssSvc != nil {
		if err := j.rssSvc.WarmCache(ctx, ""); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
