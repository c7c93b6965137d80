package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/cloudagents/auth"
)

// EnvPrefix prefixes environment overrides, e.g. CLOUDAGENTS_AUTH_TOKEN
const EnvPrefix = "CLOUDAGENTS"

// Load loads the configuration from file, with environment overrides
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cloudagents"))
		}

		// Check /etc
		v.AddConfigPath("/etc/cloudagents/")
	}

	// A missing default config file is fine when everything comes from the environment
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", "")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.user_agent", "cloudagents-cli")
	v.SetDefault("api.debug", false)

	// Registered so AutomaticEnv can resolve them during Unmarshal
	v.SetDefault("auth.strategy", auth.KindBasic)
	v.SetDefault("auth.username", "")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token", "")

	v.SetDefault("concurrency", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if cfg.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Auth.Strategy)) {
	case auth.KindBasic:
		if cfg.Auth.Username == "" || cfg.Auth.Secret == "" {
			return fmt.Errorf("auth.username and auth.secret are required for the basic strategy")
		}
	case auth.KindBearer:
		if cfg.Auth.Token == "" {
			return fmt.Errorf("auth.token is required for the bearer strategy")
		}
	default:
		return fmt.Errorf("invalid auth.strategy: %s (must be 'basic' or 'bearer')", cfg.Auth.Strategy)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Strategy builds the authentication strategy described by the config
func (c *Config) Strategy() (auth.Strategy, error) {
	return auth.FromConfig(c.Auth.Strategy, c.Auth.Username, c.Auth.Secret, c.Auth.Token)
}
