package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName           string        `mapstructure:"app_name"`
	Env               string        `mapstructure:"app_env"`
	LogLevel          string        `mapstructure:"log_level"`
	APIBaseURL        string        `mapstructure:"api_base_url"`
	APITimeoutSeconds int64         `mapstructure:"api_timeout_seconds"`
	APITimeout        time.Duration `mapstructure:"-"`
	NotifiersFile     string        `mapstructure:"notifiers_file"`

	JournalType            string        `mapstructure:"journal_type"`
	JournalPath            string        `mapstructure:"journal_path"`
	JournalTTLSeconds      int64         `mapstructure:"journal_ttl_seconds"`
	JournalCleanupSeconds  int64         `mapstructure:"journal_cleanup_interval_seconds"`
	JournalTTL             time.Duration `mapstructure:"-"`
	JournalCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "flotorch-console")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("api_timeout_seconds", 30)
	v.SetDefault("notifiers_file", "")
	v.SetDefault("journal_type", "bbolt")
	v.SetDefault("journal_path", "./data/journal.db")
	v.SetDefault("journal_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("journal_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		return fmt.Errorf("invalid api_base_url (must not be empty)")
	}

	if c.APITimeoutSeconds <= 0 {
		return fmt.Errorf("invalid api_timeout_seconds (must be positive seconds)")
	}
	c.APITimeout = time.Duration(c.APITimeoutSeconds) * time.Second

	if c.JournalTTLSeconds <= 0 {
		return fmt.Errorf("invalid journal_ttl_seconds (must be positive seconds)")
	}
	if c.JournalCleanupSeconds <= 0 {
		return fmt.Errorf("invalid journal_cleanup_interval_seconds (must be positive seconds)")
	}
	c.JournalTTL = time.Duration(c.JournalTTLSeconds) * time.Second
	c.JournalCleanupInterval = time.Duration(c.JournalCleanupSeconds) * time.Second
	c.NotifiersFile = strings.TrimSpace(c.NotifiersFile)

	return nil
}

// WithOverrides applies per-invocation values (CLI flags). Empty or non-positive values are ignored.
func (c *Config) WithOverrides(baseURL string, timeout time.Duration) (*Config, error) {
	out := *c
	if strings.TrimSpace(baseURL) != "" {
		out.APIBaseURL = baseURL
	}
	if timeout > 0 {
		out.APITimeoutSeconds = int64(timeout / time.Second)
		if out.APITimeoutSeconds == 0 {
			out.APITimeoutSeconds = 1
		}
	}
	if err := out.normalize(); err != nil {
		return nil, err
	}
	return &out, nil
}
