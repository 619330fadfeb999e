/*
 * @Description: 定时任务调度器
 * @Author: 安知鱼
 * @Date: 2026-09-11 14:09:46
 * @LastEditTime: 2026-10-04 18:20:00
 * @LastEditors: 安知鱼
 */
package task

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"
)

// Scheduler 封装了 cron 实例，负责任务的注册、启动和停止。
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler 创建调度器，日志带有固定的 "system":"cron" 属性。
func NewScheduler() *Scheduler {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return NewSchedulerWithLogger(slog.New(slogHandler))
}

// NewSchedulerWithLogger 使用指定的 logger 创建调度器
func NewSchedulerWithLogger(base *slog.Logger) *Scheduler {
	logger := base.With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		),
	)

	return &Scheduler{
		cron:   c,
		logger: logger,
	}
}

// Register 按 spec（六段式，带秒）注册一个任务
func (s *Scheduler) Register(spec string, job Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		s.logger.Error("Failed to add job", slog.String("job_name", job.Name()), slog.Any("error", err))
		return fmt.Errorf("注册定时任务 %s 失败: %w", job.Name(), err)
	}
	s.logger.Info("-> Successfully registered job", "job_name", job.Name(), "schedule", spec)
	return nil
}

// Entries 返回已注册任务的数量
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 停止调度器并等待正在执行的任务结束。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}
