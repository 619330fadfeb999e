/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 12:16:18
 * @LastEditTime: 2026-10-14 19:08:52
 * @LastEditors: 安知鱼
 */
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
)

// RequestIDKey 与请求 ID 中间件写入 gin.Context 的键一致
const RequestIDKey = "request_id"

// Response 是统一的API返回结构体
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

func write(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{
		Code:      status,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(RequestIDKey),
	})
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	write(c, http.StatusOK, data, message)
}

// SuccessWithStatus 成功响应，允许 202 Accepted 等状态码
func SuccessWithStatus(c *gin.Context, code int, data interface{}, message string) {
	write(c, code, data, message)
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	write(c, code, nil, message)
}

// FailWithError 按错误类型选择状态码，内容源故障返回 502
func FailWithError(c *gin.Context, err error, message string) {
	Fail(c, constant.HTTPStatus(err), message)
}
