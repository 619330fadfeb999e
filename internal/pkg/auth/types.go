package auth

import "github.com/golang-jwt/jwt/v5"

// ClaimsKey 是用于在 gin.Context 中存储回调令牌 Claims 的键。
const ClaimsKey = "webhook_claims"

// WebhookIssuer 内容源回调令牌的签发方
const WebhookIssuer = "anheyu-cms"

// WebhookClaims 内容源回调令牌携带的信息
type WebhookClaims struct {
	Collection string `json:"collection"` // 发生变化的集合，如 post、theme
	Reason     string `json:"reason"`     // 变化原因，如 publish、delete
	jwt.RegisteredClaims
}
