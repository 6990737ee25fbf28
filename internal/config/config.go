// Package config provides configuration management for the gateway: loading
// with viper defaults, an optional YAML config file, and SPLINE-prefixed
// environment variable overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Tarif-dev/spline-mcp-server/internal/core"
)

// Documented admission defaults: 100 calls per 60 000 ms window, independent
// per operation name.
const (
	DefaultRateWindowMS = 60000
	DefaultRateMax      = 100
	DefaultTimeout      = 30
	DefaultPort         = 8080
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelFatal LogLevel = "fatal"
)

func ValidLogLevels() map[LogLevel]struct{} {
	return map[LogLevel]struct{}{
		LogLevelDebug: {},
		LogLevelInfo:  {},
		LogLevelWarn:  {},
		LogLevelError: {},
		LogLevelFatal: {},
	}
}

func IsValidLogLevel(level LogLevel) bool {
	_, ok := ValidLogLevels()[level]
	return ok
}

type LogFormat string

const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

func ValidLogFormats() map[LogFormat]struct{} {
	return map[LogFormat]struct{}{
		LogFormatPretty: {},
		LogFormatJSON:   {},
	}
}

func IsValidLogFormat(format LogFormat) bool {
	_, ok := ValidLogFormats()[format]
	return ok
}

// Config holds the gateway configuration: the listening port, the backend
// endpoint and credential, the per-handler timeout, the admission quota, and
// the optional shared Redis counter store.
type Config struct {
	Port         int       `mapstructure:"port" validate:"min=0,max=65535"`
	BaseURL      string    `mapstructure:"base_url" validate:"required,url"`
	APIToken     string    `mapstructure:"api_token"`
	Timeout      int       `mapstructure:"timeout" validate:"min=1"`        // handler timeout in seconds
	RateWindowMS int       `mapstructure:"rate_window_ms" validate:"min=1"` // admission window length
	RateMax      int       `mapstructure:"rate_max" validate:"min=1"`       // max calls per window per operation
	RedisAddr    string    `mapstructure:"redis_addr"`                      // empty selects the in-process counter store
	RedisPass    string    `mapstructure:"redis_password"`
	RedisDB      int       `mapstructure:"redis_db" validate:"min=0"`
	LogFormat    LogFormat `mapstructure:"log_format"`
	LogLevel     LogLevel  `mapstructure:"log_level"`
}

var validate = validator.New()

// setupViper configures viper with defaults and environment variables.
// If configPath is non-empty the file at that path is read as well.
func setupViper(configPath string) error {
	viper.Reset()
	setViperDefaults()
	viper.SetEnvPrefix("SPLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

func setViperDefaults() {
	viper.SetDefault("port", DefaultPort)
	viper.SetDefault("base_url", "https://api.spline.design/v1")
	viper.SetDefault("api_token", "")
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("rate_window_ms", DefaultRateWindowMS)
	viper.SetDefault("rate_max", DefaultRateMax)
	viper.SetDefault("redis_addr", "")
	viper.SetDefault("redis_password", "")
	viper.SetDefault("redis_db", 0)
	viper.SetDefault("log_format", "json")
	viper.SetDefault("log_level", "info")
}

// Load loads configuration from defaults, the optional config file at
// configPath, and SPLINE_* environment variables, in increasing precedence.
func Load(configPath string) (*Config, error) {
	if err := setupViper(configPath); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration's struct tags and enum fields.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.LogFormat != "" && !IsValidLogFormat(cfg.LogFormat) {
		return fmt.Errorf("log_format must be one of: %s, got '%s'",
			core.JoinMapKeys(ValidLogFormats()), cfg.LogFormat)
	}
	if cfg.LogLevel != "" && !IsValidLogLevel(cfg.LogLevel) {
		return fmt.Errorf("log_level must be one of: %s, got '%s'",
			core.JoinMapKeys(ValidLogLevels()), cfg.LogLevel)
	}

	return nil
}
