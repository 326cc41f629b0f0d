package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Logging LoggingConfig
}

// APIConfig holds backend connection configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Dir string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseurl", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 30*time.Second)

	v.SetDefault("storage.dir", defaultDataDir())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("api.baseurl", "HEALIX_API_URL")
	v.BindEnv("api.timeout", "HEALIX_API_TIMEOUT")

	v.BindEnv("storage.dir", "HEALIX_DATA_DIR")

	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseurl is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required")
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healix"
	}
	return filepath.Join(home, ".healix")
}
