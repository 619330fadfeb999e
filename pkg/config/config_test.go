package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromFile_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "conf.ini")

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "default config file should be written")

	assert.Equal(t, "8091", cfg.GetString(KeyServerPort))
	assert.Equal(t, 10*time.Second, cfg.GetDuration(KeyCMSTimeout))
	assert.Equal(t, 3, cfg.GetInt(KeyCMSRetryMax))
	assert.Equal(t, time.Minute, cfg.GetDuration(KeyCacheTTL))
	assert.Equal(t, "半亩方糖", cfg.GetString(KeySiteName))
	assert.Equal(t, "0 */5 * * * *", cfg.GetString(KeyTaskWarmupSpec))
	assert.Empty(t, cfg.GetString(KeyCMSEndpoint))
	assert.False(t, cfg.GetBool(KeyServerDebug))
}

func TestNewConfigFromFile_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	content := `[System]
Port = 9000
Debug = true

[CMS]
Endpoint = https://cms.example.com/graphql
Token =

[Cache]
TTL = 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("ANHEYU_CMS_TOKEN", "from-env")
	t.Setenv("ANHEYU_SYSTEM_PORT", "9100")

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.GetString(KeyServerPort))
	assert.True(t, cfg.GetBool(KeyServerDebug))
	assert.Equal(t, "https://cms.example.com/graphql", cfg.GetString(KeyCMSEndpoint))
	assert.Equal(t, "from-env", cfg.GetString(KeyCMSToken))
	assert.Equal(t, time.Duration(0), cfg.GetDuration(KeyCacheTTL))
	// 文件中未出现的键保留默认值
	assert.Equal(t, 3, cfg.GetInt(KeyCMSRetryMax))
}

func TestNewConfigFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	require.NoError(t, os.WriteFile(path, []byte("[System\nPort = 1\n"), 0644))

	_, err := NewConfigFromFile(path)
	assert.Error(t, err)
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "ANHEYU_CMS_ENDPOINT", EnvVarName(KeyCMSEndpoint))
	assert.Equal(t, "ANHEYU_RATELIMIT_PERMINUTE", EnvVarName(KeyRateLimitPerMinute))
}
