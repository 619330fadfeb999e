package version

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
)

// Handler 版本信息处理器
type Handler struct{}

// NewHandler 创建版本信息处理器实例
func NewHandler() *Handler {
	return &Handler{}
}

// GetVersion 获取版本信息
// @Summary      获取版本信息
// @Description  获取应用的详细版本信息
// @Tags         辅助工具
// @Produce      json
// @Success      200  {object}  response.Response{data=version.BuildInfo}  "版本信息"
// @Router       /api/version [get]
func (h *Handler) GetVersion(c *gin.Context) {
	response.Success(c, version.GetBuildInfo(), "获取版本信息成功")
}

// GetVersionString 获取版本字符串
// @Summary      获取版本字符串
// @Description  获取应用的版本号字符串
// @Tags         辅助工具
// @Produce      json
// @Success      200  {object}  response.Response{data=string}  "版本字符串"
// @Router       /api/version/string [get]
func (h *Handler) GetVersionString(c *gin.Context) {
	response.Success(c, version.GetVersionString(), "获取版本信息成功")
}
