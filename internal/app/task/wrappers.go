/*
 * @Description: 提供了用于 cron 任务的中间件（装饰器）。
 * @Author: 安知鱼
 * @Date: 2026-09-11 14:36:09
 * @LastEditTime: 2026-10-04 00:32:02
 * @LastEditors: 安知鱼
 */
package task

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// NewLoggingWrapper 创建一个日志装饰器。
// 每次执行带有唯一的 execution_id；任务实现了 ErrorReporter 时，失败会以 Error 级别记录。
func NewLoggingWrapper(logger *slog.Logger) cron.JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.FuncJob(func() {
			jobLogger := logger.With(
				slog.String("job_name", jobName(j)),
				slog.String("execution_id", uuid.NewString()),
			)

			startTime := time.Now()
			jobLogger.Info("Job execution started")

			j.Run()

			duration := time.Since(startTime)
			if reporter, ok := j.(ErrorReporter); ok {
				if err := reporter.LastError(); err != nil {
					jobLogger.Error("Job execution failed", slog.Duration("duration", duration), slog.Any("error", err))
					return
				}
			}
			jobLogger.Info("Job execution finished", slog.Duration("duration", duration))
		})
	}
}

// NewPanicRecoveryWrapper 创建一个 panic 恢复装饰器。
// 任务 panic 时记录错误和堆栈，调度器继续运行。
func NewPanicRecoveryWrapper(logger *slog.Logger) cron.JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.FuncJob(func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Job panicked",
						slog.String("job_name", jobName(j)),
						slog.Any("panic", r),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()

			j.Run()
		})
	}
}

// jobName 优先使用任务自定义的 Name()，否则取其类型名
func jobName(j cron.Job) string {
	if namedJob, ok := j.(interface{ Name() string }); ok {
		return namedJob.Name()
	}

	jobType := reflect.TypeOf(j)
	if jobType.Kind() == reflect.Ptr {
		return jobType.Elem().String()
	}
	return jobType.String()
}
