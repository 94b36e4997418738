// Package config loads pawdeck settings from defaults, an optional
// config file, and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	// BatchSize is the number of cats fetched per session.
	BatchSize int `mapstructure:"batch_size"`

	// SwipeThreshold is the horizontal drag distance (in cells) past
	// which a gesture becomes a decision.
	SwipeThreshold float64 `mapstructure:"swipe_threshold"`

	// ProviderURL is the image endpoint, one GET per batch slot.
	ProviderURL string `mapstructure:"provider_url"`

	// FallbackURL is substituted for a slot whose fetch failed.
	FallbackURL string `mapstructure:"fallback_url"`

	// FetchTimeout bounds each individual image fetch.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	// FetchConcurrency caps parallel image fetches per batch.
	FetchConcurrency int `mapstructure:"fetch_concurrency"`

	// RatePerSecond limits outbound requests to the provider.
	RatePerSecond float64 `mapstructure:"rate_per_second"`
}

// Load reads configuration from ~/.pawdeck/config.json (if present),
// PAWDECK_* environment variables, and built-in defaults, in that
// order of increasing precedence for env over file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("batch_size", 10)
	v.SetDefault("swipe_threshold", 50.0)
	v.SetDefault("provider_url", "https://cataas.com/cat")
	v.SetDefault("fallback_url", "https://cataas.com/cat/gif")
	v.SetDefault("fetch_timeout", 15*time.Second)
	v.SetDefault("fetch_concurrency", 5)
	v.SetDefault("rate_per_second", 5.0)

	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".pawdeck"))
		v.SetConfigName("config")
		v.SetConfigType("json")
	}

	v.SetEnvPrefix("PAWDECK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the app cannot work with.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.SwipeThreshold <= 0 {
		return fmt.Errorf("swipe_threshold must be positive, got %v", c.SwipeThreshold)
	}
	if c.ProviderURL == "" {
		return errors.New("provider_url is required")
	}
	if c.FallbackURL == "" {
		return errors.New("fallback_url is required")
	}
	if c.FetchConcurrency <= 0 {
		return fmt.Errorf("fetch_concurrency must be positive, got %d", c.FetchConcurrency)
	}
	return nil
}
