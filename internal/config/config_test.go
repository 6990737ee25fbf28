package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults tests loading without a config file or environment
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "https://api.spline.design/v1", cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultRateWindowMS, cfg.RateWindowMS)
	assert.Equal(t, DefaultRateMax, cfg.RateMax)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
}

// TestLoad_ConfigFile tests loading from an explicit YAML file
func TestLoad_ConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `port: 9090
base_url: https://spline.internal/v1
api_token: file-token
timeout: 5
rate_window_ms: 1000
rate_max: 10
redis_addr: localhost:6379
log_format: pretty
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://spline.internal/v1", cfg.BaseURL)
	assert.Equal(t, "file-token", cfg.APIToken)
	assert.Equal(t, 5, cfg.Timeout)
	assert.Equal(t, 1000, cfg.RateWindowMS)
	assert.Equal(t, 10, cfg.RateMax)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, LogFormatPretty, cfg.LogFormat)
}

// TestLoad_EnvOverride tests SPLINE-prefixed environment variables
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPLINE_API_TOKEN", "env-token")
	t.Setenv("SPLINE_RATE_MAX", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.APIToken)
	assert.Equal(t, 7, cfg.RateMax)
}

// TestLoad_MissingFile tests that a named but absent config file is an error
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestValidate_Rejections tests the validation rules
func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:         8080,
			BaseURL:      "https://api.spline.design/v1",
			Timeout:      30,
			RateWindowMS: 60000,
			RateMax:      100,
			LogFormat:    LogFormatJSON,
			LogLevel:     LogLevelInfo,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"missing base url", func(c *Config) { c.BaseURL = "" }},
		{"base url not a url", func(c *Config) { c.BaseURL = "not a url" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero rate window", func(c *Config) { c.RateWindowMS = 0 }},
		{"zero rate max", func(c *Config) { c.RateMax = 0 }},
		{"negative redis db", func(c *Config) { c.RedisDB = -1 }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}

	assert.NoError(t, Validate(base()))
}
