/*
 * @Description: 内容源回调处理器
 * @Author: 安知鱼
 * @Date: 2026-09-08 22:03:40
 * @LastEditTime: 2026-10-02 10:41:19
 * @LastEditors: 安知鱼
 */
package webhook

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
)

// Publisher 事件发布者
type Publisher interface {
	Publish(topic event.Topic, payload interface{}) bool
}

// Handler 内容源回调处理器
type Handler struct {
	bus Publisher
}

// NewHandler 创建回调处理器
func NewHandler(bus Publisher) *Handler {
	return &Handler{bus: bus}
}

// notifyRequest 回调请求体，字段均可选，令牌中的值优先
type notifyRequest struct {
	Collection string `json:"collection"`
	Reason     string `json:"reason"`
}

// Notify 接收内容源的变更通知并异步刷新缓存
// @Summary      内容变更回调
// @Description  校验回调令牌后发布内容变更事件，缓存在后台清除
// @Tags         内容源
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string         true   "Bearer 回调令牌"
// @Param        body           body    notifyRequest  false  "变更信息"
// @Success      202  {object}  response.Response  "已接受"
// @Failure      401  {object}  response.Response  "令牌无效"
// @Failure      503  {object}  response.Response  "事件队列已满"
// @Router       /api/cms/webhook [post]
func (h *Handler) Notify(c *gin.Context) {
	var req notifyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, "请求体格式错误")
			return
		}
	}

	payload := event.ContentUpdatedPayload{
		Collection: req.Collection,
		Reason:     req.Reason,
	}
	if claims, ok := c.Get(auth.ClaimsKey); ok {
		if wc, ok := claims.(*auth.WebhookClaims); ok {
			if wc.Collection != "" {
				payload.Collection = wc.Collection
			}
			if wc.Reason != "" {
				payload.Reason = wc.Reason
			}
		}
	}
	if payload.Reason == "" {
		payload.Reason = "webhook"
	}

	if !h.bus.Publish(constant.EventContentUpdated, payload) {
		response.Fail(c, http.StatusServiceUnavailable, "事件队列已满，请稍后重试")
		return
	}

	log.Printf("[Webhook] 收到内容变更通知: collection=%q reason=%q", payload.Collection, payload.Reason)
	response.SuccessWithStatus(c, http.StatusAccepted, payload, "已接受")
}
