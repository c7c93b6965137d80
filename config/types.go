package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Presets     map[string]string `mapstructure:"presets"`
	Concurrency int               `mapstructure:"concurrency"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// APIConfig holds the Cloud Agents environment details
type APIConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Debug     bool          `mapstructure:"debug"`
}

// AuthConfig selects and configures the authentication strategy
type AuthConfig struct {
	Strategy string `mapstructure:"strategy"`
	Username string `mapstructure:"username"`
	Secret   string `mapstructure:"secret"`
	Token    string `mapstructure:"token"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
