package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Rates   RatesConfig
	Scan    ScanConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog configuration
type CatalogConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// RatesConfig holds exchange-rate service configuration
type RatesConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

// ScanConfig holds scan/injection configuration
type ScanConfig struct {
	DebounceDelay time.Duration `mapstructure:"debounce_delay"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gamebites/")

	// Environment variable settings
	v.SetEnvPrefix("GAMEBITES")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://steambite.uk")

	// Rates defaults
	v.SetDefault("rates.base_url", "https://api.frankfurter.app")
	v.SetDefault("rates.snapshot_ttl", "1h")

	// Scan defaults
	v.SetDefault("scan.debounce_delay", "100ms")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set GAMEBITES_CATALOG_BASE_URL)")
	}

	if config.Rates.BaseURL == "" {
		return fmt.Errorf("rates base URL is required (set GAMEBITES_RATES_BASE_URL)")
	}

	if config.Scan.DebounceDelay < 0 {
		return fmt.Errorf("scan debounce delay must not be negative, got: %s", config.Scan.DebounceDelay)
	}

	return nil
}
