package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// 这些变量将在构建时通过 ldflags 注入
var (
	Version   = "dev"             // 版本号，如 v1.0.0
	Commit    = "unknown"         // Git commit hash
	Date      = "unknown"         // 构建时间
	GoVersion = runtime.Version() // Go 版本
)

// ModulePath 作为依赖被引入时用于查找版本号
const ModulePath = "github.com/anzhiyu-c/anheyu-posts"

const unknown = "unknown"

// BuildInfo 包含构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

var readBuildInfo = sync.OnceValues(debug.ReadBuildInfo)

// injected 判断 ldflags 是否覆盖了默认值
func injected(value, placeholder string) bool {
	return value != "" && value != placeholder
}

// vcsSetting 读取 go build 记录的 vcs.* 信息
func vcsSetting(key string) string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// GetVersion 返回应用版本号，优先 ldflags，其次模块版本
func GetVersion() string {
	if injected(Version, "dev") {
		return Version
	}

	info, ok := readBuildInfo()
	if !ok {
		return "unknown (no build info)"
	}
	if info.Main.Path != ModulePath {
		for _, dep := range info.Deps {
			if dep.Path == ModulePath {
				return dep.Version
			}
		}
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetCommit 返回短 commit hash
func GetCommit() string {
	if injected(Commit, unknown) {
		return Commit
	}
	rev := vcsSetting("vcs.revision")
	if rev == "" {
		return unknown
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	return rev
}

// GetBuildDate 返回构建时间
func GetBuildDate() string {
	if injected(Date, unknown) {
		return Date
	}
	value := vcsSetting("vcs.time")
	if value == "" {
		return unknown
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02 15:04:05")
	}
	return value
}

// GetBuildInfo 返回详细的构建信息
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   GetVersion(),
		Commit:    GetCommit(),
		Date:      GetBuildDate(),
		GoVersion: GoVersion,
	}
}

// GetVersionString 返回完整的版本字符串，如 "v1.0.0, commit abc1234, built at ..."
func GetVersionString() string {
	parts := []string{GetVersion()}
	if commit := GetCommit(); commit != unknown {
		parts = append(parts, fmt.Sprintf("commit %s", commit))
	}
	if date := GetBuildDate(); date != unknown {
		parts = append(parts, fmt.Sprintf("built at %s", date))
	}
	return strings.Join(parts, ", ")
}
