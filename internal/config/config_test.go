package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	// Create temp config file
	content := `
catalog:
  api_base_url: "http://localhost:8000"
  poll_interval: 5m
  timeout: 30s

analytics:
  other_threshold: 0.05
  other_label: "Other"
  rating_bucket_width: 1.0
  default_page_size: 10

alerts:
  enabled: true
  bot_token: "test_token"
  chat_id: "123456"
  low_stock_threshold: 10
  max_retries: 3
  retry_delay: 2s

logging:
  level: "info"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Catalog.APIBaseURL != "http://localhost:8000" {
		t.Errorf("Unexpected API URL: %s", cfg.Catalog.APIBaseURL)
	}
	if cfg.Analytics.OtherThreshold != 0.05 {
		t.Errorf("Unexpected other_threshold: %f", cfg.Analytics.OtherThreshold)
	}
	if cfg.Alerts.LowStockThreshold != 10 {
		t.Errorf("Unexpected low_stock_threshold: %d", cfg.Alerts.LowStockThreshold)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	// A minimal file still yields a complete, valid configuration.
	content := `
catalog:
  api_base_url: "http://localhost:8000"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analytics.OtherThreshold != 0.05 {
		t.Errorf("default other_threshold = %f, want 0.05", cfg.Analytics.OtherThreshold)
	}
	if cfg.Analytics.OtherLabel != "Other" {
		t.Errorf("default other_label = %q, want Other", cfg.Analytics.OtherLabel)
	}
	if cfg.Analytics.RatingBucketWidth != 1.0 {
		t.Errorf("default rating_bucket_width = %f, want 1.0", cfg.Analytics.RatingBucketWidth)
	}
	if cfg.Catalog.PollInterval != 5*time.Minute {
		t.Errorf("default poll_interval = %v, want 5m", cfg.Catalog.PollInterval)
	}
	if cfg.Alerts.Enabled {
		t.Error("alerts enabled by default, want disabled")
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate on defaults failed: %v", err)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	// Secrets stay out of the config file and arrive via environment.
	content := `
catalog:
  api_base_url: "http://localhost:8000"

alerts:
  enabled: true
  chat_id: "123456"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CATALOG_DASHBOARD_ALERTS_BOT_TOKEN", "env-token")
	t.Setenv("CATALOG_DASHBOARD_LOGGING_LEVEL", "debug")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Alerts.BotToken != "env-token" {
		t.Errorf("BotToken = %q, want env-token", cfg.Alerts.BotToken)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug (env must beat the default)", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{
				APIBaseURL:   "http://localhost:8000",
				PollInterval: 5 * time.Minute,
				Timeout:      30 * time.Second,
			},
			Analytics: AnalyticsConfig{
				OtherThreshold:    0.05,
				OtherLabel:        "Other",
				RatingBucketWidth: 1.0,
				DefaultPageSize:   10,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid baseline",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.Catalog.APIBaseURL = "" },
			wantErr: true,
		},
		{
			name:    "poll interval too short",
			mutate:  func(c *Config) { c.Catalog.PollInterval = 5 * time.Second },
			wantErr: true,
		},
		{
			name:    "threshold above 1",
			mutate:  func(c *Config) { c.Analytics.OtherThreshold = 1.5 },
			wantErr: true,
		},
		{
			name:    "zero bucket width",
			mutate:  func(c *Config) { c.Analytics.RatingBucketWidth = 0 },
			wantErr: true,
		},
		{
			name: "alerts enabled without token",
			mutate: func(c *Config) {
				c.Alerts.Enabled = true
				c.Alerts.ChatID = "123456"
				c.Alerts.LowStockThreshold = 10
			},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
