package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CatalogConfig holds catalog API configuration
type CatalogConfig struct {
	APIBaseURL   string        `mapstructure:"api_base_url"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// AnalyticsConfig holds aggregation behavior configuration
type AnalyticsConfig struct {
	OtherThreshold    float64 `mapstructure:"other_threshold"`
	OtherLabel        string  `mapstructure:"other_label"`
	RatingBucketWidth float64 `mapstructure:"rating_bucket_width"`
	DefaultPageSize   int     `mapstructure:"default_page_size"`
}

// AlertsConfig holds low-stock Telegram alert configuration
type AlertsConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	BotToken          string        `mapstructure:"bot_token"`
	ChatID            string        `mapstructure:"chat_id"`
	LowStockThreshold int           `mapstructure:"low_stock_threshold"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	// Enable environment variable override; the replacer maps nested keys
	// like alerts.bot_token to CATALOG_DASHBOARD_ALERTS_BOT_TOKEN
	v.SetEnvPrefix("CATALOG_DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Catalog defaults
	v.SetDefault("catalog.api_base_url", "http://localhost:8000")
	v.SetDefault("catalog.poll_interval", "5m")
	v.SetDefault("catalog.timeout", "30s")

	// Analytics defaults
	v.SetDefault("analytics.other_threshold", 0.05)
	v.SetDefault("analytics.other_label", "Other")
	v.SetDefault("analytics.rating_bucket_width", 1.0)
	v.SetDefault("analytics.default_page_size", 10)

	// Alerts defaults. The secrets default to empty so viper knows the keys
	// and env overrides apply even when the config file omits them.
	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.bot_token", "")
	v.SetDefault("alerts.chat_id", "")
	v.SetDefault("alerts.low_stock_threshold", 10)
	v.SetDefault("alerts.max_retries", 3)
	v.SetDefault("alerts.retry_delay", "2s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Catalog.APIBaseURL == "" {
		return fmt.Errorf("catalog.api_base_url is required")
	}
	if c.Catalog.PollInterval < 30*time.Second {
		return fmt.Errorf("catalog.poll_interval must be at least 30 seconds")
	}
	if c.Catalog.Timeout < 1*time.Second {
		return fmt.Errorf("catalog.timeout must be at least 1 second")
	}

	if c.Analytics.OtherThreshold < 0.0 || c.Analytics.OtherThreshold > 1.0 {
		return fmt.Errorf("analytics.other_threshold must be between 0.0 and 1.0")
	}
	if c.Analytics.OtherLabel == "" {
		return fmt.Errorf("analytics.other_label is required")
	}
	if c.Analytics.RatingBucketWidth <= 0 {
		return fmt.Errorf("analytics.rating_bucket_width must be positive")
	}
	if c.Analytics.DefaultPageSize < 1 {
		return fmt.Errorf("analytics.default_page_size must be at least 1")
	}

	if c.Alerts.Enabled {
		if c.Alerts.BotToken == "" {
			return fmt.Errorf("alerts.bot_token is required when alerts are enabled")
		}
		if c.Alerts.ChatID == "" {
			return fmt.Errorf("alerts.chat_id is required when alerts are enabled")
		}
		if c.Alerts.LowStockThreshold < 1 {
			return fmt.Errorf("alerts.low_stock_threshold must be at least 1")
		}
		if c.Alerts.MaxRetries < 0 {
			return fmt.Errorf("alerts.max_retries must not be negative")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
