/*
 * @Description: 统一配置管理 (手动加载 ini + 环境变量覆盖)
 * @Author: 安知鱼
 * @Date: 2026-09-02 10:12:40
 * @LastEditTime: 2026-10-11 16:41:05
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultFilePath 默认配置文件路径
const DefaultFilePath = "data/conf.ini"

// EnvPrefix 环境变量前缀，例如 ANHEYU_CMS_ENDPOINT
const EnvPrefix = "ANHEYU"

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug,
	KeyCMSEndpoint, KeyCMSToken, KeyCMSTokenURL, KeyCMSClientID, KeyCMSClientSecret, KeyCMSTimeout, KeyCMSRetryMax,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeyCacheTTL,
	KeySiteName, KeySiteURL, KeySiteDescription,
	KeyWebhookSecret,
	KeyTaskWarmupSpec,
	KeyRateLimitPerMinute, KeyRateLimitBurst,
}

const (
	KeyServerPort  = "System.Port"
	KeyServerDebug = "System.Debug"

	KeyCMSEndpoint     = "CMS.Endpoint"
	KeyCMSToken        = "CMS.Token"
	KeyCMSTokenURL     = "CMS.TokenURL"
	KeyCMSClientID     = "CMS.ClientID"
	KeyCMSClientSecret = "CMS.ClientSecret"
	KeyCMSTimeout      = "CMS.Timeout"
	KeyCMSRetryMax     = "CMS.RetryMax"

	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"

	KeyCacheTTL = "Cache.TTL"

	KeySiteName        = "Site.Name"
	KeySiteURL         = "Site.URL"
	KeySiteDescription = "Site.Description"

	KeyWebhookSecret = "Webhook.Secret"

	KeyTaskWarmupSpec = "Task.WarmupSpec"

	KeyRateLimitPerMinute = "RateLimit.PerMinute"
	KeyRateLimitBurst     = "RateLimit.Burst"
)

type Config struct {
	vp *viper.Viper
}

// NewConfig 从 data/conf.ini 和环境变量加载配置
func NewConfig() (*Config, error) {
	return NewConfigFromFile(DefaultFilePath)
}

// NewConfigFromFile 手动加载指定路径的配置文件，文件不存在时自动创建默认配置
func NewConfigFromFile(filePath string) (*Config, error) {
	vp := viper.New()
	setDefaults(vp)

	// --- 步骤 1: 使用 go-ini 从文件加载配置 ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				// 空值不覆盖内部默认值
				if strings.TrimSpace(key.Value()) == "" {
					continue
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	for _, key := range allKeys {
		envVarName := EnvVarName(key)
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

// EnvVarName 返回配置键对应的环境变量名，例如 CMS.Endpoint -> ANHEYU_CMS_ENDPOINT
func EnvVarName(key string) string {
	return fmt.Sprintf("%s_%s", EnvPrefix, strings.ReplaceAll(strings.ToUpper(key), ".", "_"))
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault(KeyServerPort, "8091")
	vp.SetDefault(KeyServerDebug, false)
	vp.SetDefault(KeyCMSTimeout, 10)
	vp.SetDefault(KeyCMSRetryMax, 3)
	vp.SetDefault(KeyRedisDB, 0)
	vp.SetDefault(KeyCacheTTL, 60)
	vp.SetDefault(KeySiteName, "半亩方糖")
	vp.SetDefault(KeyTaskWarmupSpec, "0 */5 * * * *")
	vp.SetDefault(KeyRateLimitPerMinute, 120)
	vp.SetDefault(KeyRateLimitBurst, 60)
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// GetDuration 将以秒为单位的配置值转换为 time.Duration
func (c *Config) GetDuration(key string) time.Duration {
	return time.Duration(c.vp.GetInt(key)) * time.Second
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8091
Debug = false

# 内容源（GraphQL 接口）
# 使用静态令牌时填写 Token；使用 OAuth2 客户端凭证时填写 TokenURL/ClientID/ClientSecret
[CMS]
Endpoint =
Token =
TokenURL =
ClientID =
ClientSecret =
Timeout = 10
RetryMax = 3

# Redis 配置（可选）
# 如果不配置或留空 Addr，系统将自动使用内存缓存
[Redis]
Addr =
Password =
DB = 0

# 内容缓存时间（秒），0 表示不缓存
[Cache]
TTL = 60

[Site]
Name = 半亩方糖
URL =
Description =

# 内容更新回调的 HS256 签名密钥
[Webhook]
Secret =

[Task]
WarmupSpec = 0 */5 * * * *

[RateLimit]
PerMinute = 120
Burst = 60
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
