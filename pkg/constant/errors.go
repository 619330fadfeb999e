/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-02 11:05:13
 * @LastEditTime: 2026-10-14 20:14:37
 * @LastEditors: 安知鱼
 */
package constant

import (
	"errors"
	"net/http"
)

// 内容源相关的标准错误
var (
	// ErrCMSNotConfigured 表示内容源地址未配置
	ErrCMSNotConfigured = errors.New("内容源未配置")

	// ErrCMSUnavailable 表示内容源请求失败（网络错误或非 2xx 状态码）
	ErrCMSUnavailable = errors.New("内容源不可用")

	// ErrCMSResponse 表示内容源返回了 GraphQL 错误或无法解析的数据
	ErrCMSResponse = errors.New("内容源返回错误")
)

// HTTPStatus 将业务错误映射为 HTTP 状态码，内容源错误为 502，其余为 500
func HTTPStatus(err error) int {
	if errors.Is(err, ErrCMSUnavailable) || errors.Is(err, ErrCMSResponse) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
