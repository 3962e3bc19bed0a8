// Package config provides configuration loading and validation for pql's
// CLI and server modes.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidPort          = errors.New("invalid server port")
	ErrInvalidCacheCapacity = errors.New("cache capacity must be positive")
	ErrInvalidCacheMaxBytes = errors.New("cache max bytes must not be negative")
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogFormat     = errors.New("invalid log format")
)

// Default configuration values.
const (
	defaultPort          = 8080
	defaultHost          = "0.0.0.0"
	defaultCacheCapacity = 1024
	defaultCacheMaxBytes = 0 // 0 means unbounded by byte size.
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultBasePath      = "$"
	maxPort              = 65535
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true,
}

// Config holds all configuration for the pql CLI and server.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	Eval    EvalConfig    `mapstructure:"eval"`
}

// ServerConfig holds `pql serve` HTTP server configuration.
type ServerConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
}

// CacheConfig holds canonical-path LRU cache settings. They are loaded with
// the rest of Config, but no command in cmd/pql reads them.
type CacheConfig struct {
	// Capacity is the maximum number of canonical paths cached.
	Capacity int `mapstructure:"capacity"`

	// MaxBytes bounds cache memory use by the sum of cached path string
	// lengths. Zero means unbounded.
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EvalConfig holds evaluation settings. They are loaded with the rest of
// Config, but neither cmd/pql nor pkg/eval reads them.
type EvalConfig struct {
	// BasePath is a canonical path for the root expression context; it is
	// not read when rendering `@path`.
	BasePath string `mapstructure:"base_path"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches "./pql.yaml", "./config/pql.yaml", and
// "/etc/pql/pql.yaml" in order.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("pql")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/pql")
	}

	viperCfg.SetEnvPrefix("PQL")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	if validateErr := validateConfig(&cfg); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("server.host", defaultHost)
	viperCfg.SetDefault("server.port", defaultPort)
	viperCfg.SetDefault("server.prometheus_enabled", false)

	viperCfg.SetDefault("cache.capacity", defaultCacheCapacity)
	viperCfg.SetDefault("cache.max_bytes", defaultCacheMaxBytes)

	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)

	viperCfg.SetDefault("eval.base_path", defaultBasePath)
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Server.Port)
	}

	if cfg.Cache.Capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheCapacity, cfg.Cache.Capacity)
	}

	if cfg.Cache.MaxBytes < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheMaxBytes, cfg.Cache.MaxBytes)
	}

	if !validLogLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Logging.Level)
	}

	if !validLogFormats[strings.ToLower(cfg.Logging.Format)] {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.Logging.Format)
	}

	return nil
}
