/*
 * @Description: 内容源 GraphQL 客户端
 * @Author: 安知鱼
 * @Date: 2026-09-03 16:02:18
 * @LastEditTime: 2026-10-12 11:37:50
 * @LastEditors: 安知鱼
 */
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-posts/pkg/config"
	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
)

const (
	defaultTimeout = 10 * time.Second
	// 单次响应体读取上限
	maxResponseBytes = 8 << 20
)

// Options 内容源客户端配置
type Options struct {
	Endpoint string
	// Token 静态访问令牌，同时写入 X-API-KEY 和 Authorization 头
	Token string
	// TokenURL/ClientID/ClientSecret 配置后使用 OAuth2 客户端凭证模式获取令牌
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Debug        bool
}

// OptionsFromConfig 从配置中读取客户端参数
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Endpoint:     cfg.GetString(config.KeyCMSEndpoint),
		Token:        cfg.GetString(config.KeyCMSToken),
		TokenURL:     cfg.GetString(config.KeyCMSTokenURL),
		ClientID:     cfg.GetString(config.KeyCMSClientID),
		ClientSecret: cfg.GetString(config.KeyCMSClientSecret),
		Timeout:      cfg.GetDuration(config.KeyCMSTimeout),
		RetryMax:     cfg.GetInt(config.KeyCMSRetryMax),
		Debug:        cfg.GetBool(config.KeyServerDebug),
	}
}

// Client 通过 GraphQL 查询内容源，实现 repository.ContentRepository
type Client struct {
	endpoint string
	token    string
	http     *retryablehttp.Client
	debug    bool
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// NewClient 创建内容源客户端
func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return nil, constant.ErrCMSNotConfigured
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retryClient := retryablehttp.NewClient()
	if opts.TokenURL != "" {
		ccCfg := &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     opts.TokenURL,
		}
		// 令牌请求同样受超时约束
		baseCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
		retryClient.HTTPClient = ccCfg.Client(baseCtx)
	}
	retryClient.HTTPClient.Timeout = timeout
	if opts.RetryMax >= 0 {
		retryClient.RetryMax = opts.RetryMax
	}
	if opts.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = opts.RetryWaitMax
	}
	// 重试耗尽后交回最后一次响应，由 execute 统一处理状态码
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.Debug {
		retryClient.Logger = log.Default()
	} else {
		retryClient.Logger = nil
	}

	return &Client{
		endpoint: endpoint,
		token:    opts.Token,
		http:     retryClient,
		debug:    opts.Debug,
	}, nil
}

// PostConnection 查询文章连接，filter 为 nil 时不携带 filter 变量。
// 内容源返回 data 为 null 时结果为 nil。
func (c *Client) PostConnection(ctx context.Context, filter *model.PostFilter) (*model.PostConnectionResult, error) {
	variables := map[string]interface{}{}
	if filter != nil {
		variables["filter"] = filter
	}

	var data model.PostConnectionData
	found, err := c.execute(ctx, postConnectionQuery, variables, &data)
	if err != nil {
		return nil, fmt.Errorf("查询文章失败: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &model.PostConnectionResult{
		Data:      data,
		Query:     postConnectionQuery,
		Variables: variables,
	}, nil
}

// ThemeConnection 查询主题连接
func (c *Client) ThemeConnection(ctx context.Context) (*model.ThemeConnectionResult, error) {
	variables := map[string]interface{}{}

	var data model.ThemeConnectionData
	found, err := c.execute(ctx, themeConnectionQuery, variables, &data)
	if err != nil {
		return nil, fmt.Errorf("查询主题失败: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &model.ThemeConnectionResult{
		Data:      data,
		Query:     themeConnectionQuery,
		Variables: variables,
	}, nil
}

// execute 发送 GraphQL 请求并把 data 解码到 out。
// 返回的 bool 表示响应中是否存在非 null 的 data。
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) (bool, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return false, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-API-KEY", c.token)
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", constant.ErrCMSUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return false, fmt.Errorf("%w: 读取响应失败: %v", constant.ErrCMSUnavailable, err)
	}

	if c.debug {
		log.Printf("[CMS Client] POST %s -> %d (%s, %d bytes)", c.endpoint, resp.StatusCode, time.Since(start), len(body))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return false, fmt.Errorf("%w: 状态码 %d: %s", constant.ErrCMSUnavailable, resp.StatusCode, strutil.Truncate(string(body), 200))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return false, fmt.Errorf("%w: 解析响应失败: %v", constant.ErrCMSResponse, err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return false, fmt.Errorf("%w: %s", constant.ErrCMSResponse, strings.Join(messages, "; "))
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return false, fmt.Errorf("%w: 解析 data 失败: %v", constant.ErrCMSResponse, err)
	}
	return true, nil
}
