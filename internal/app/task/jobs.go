// internal/app/task/jobs.go
package task

// Job 与 cron.Job 接口兼容，并提供可读的任务名
type Job interface {
	Run()
	Name() string
}

// ErrorReporter 由能报告最近一次执行结果的任务实现，日志装饰器据此记录失败
type ErrorReporter interface {
	LastError() error
}
