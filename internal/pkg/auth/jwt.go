/*
 * @Description: 内容源回调令牌的签发与校验
 * @Author: 安知鱼
 * @Date: 2026-09-08 21:40:12
 * @LastEditTime: 2026-10-02 10:15:36
 * @LastEditors: 安知鱼
 */
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret 未配置签名密钥
var ErrEmptySecret = errors.New("回调签名密钥不能为空")

// GenerateWebhookToken 签发一个回调令牌，供内容源或运维脚本调用回调接口
func GenerateWebhookToken(collection, reason string, secretKey []byte, ttl time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", ErrEmptySecret
	}

	now := time.Now()
	claims := WebhookClaims{
		Collection: collection,
		Reason:     reason,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    WebhookIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseWebhookToken 校验并解析回调令牌，只接受 HMAC 签名且签发方匹配的令牌
func ParseWebhookToken(tokenStr string, secretKey []byte) (*WebhookClaims, error) {
	if len(secretKey) == 0 {
		return nil, ErrEmptySecret
	}

	claims := &WebhookClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithIssuer(WebhookIssuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("解析token失败: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("无效或过期Token")
	}

	return claims, nil
}
