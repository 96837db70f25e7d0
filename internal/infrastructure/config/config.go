package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Security    SecurityConfig `mapstructure:"security"`
	ATM         ATMConfig      `mapstructure:"atm"`
}

// DatabaseConfig contains store connection settings
type DatabaseConfig struct {
	Driver        string        `mapstructure:"driver"`
	Path          string        `mapstructure:"path"`
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	Name          string        `mapstructure:"name"`
	SSLMode       string        `mapstructure:"sslMode"`
	MaxOpenConns  int           `mapstructure:"maxOpenConns"`
	LogLevel      string        `mapstructure:"logLevel"`
	RetryAttempts int           `mapstructure:"retryAttempts"`
	RetryDelay    int           `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// SecurityConfig selects how PINs are digested
type SecurityConfig struct {
	PINHashAlgorithm string `mapstructure:"pinHashAlgorithm"`
	PINPepper        string `mapstructure:"pinPepper"`
	PBKDF2Iterations int    `mapstructure:"pbkdf2Iterations"`
}

// ATMConfig contains console behaviour
type ATMConfig struct {
	CurrencySymbol      string `mapstructure:"currencySymbol"`
	SeedDefaultAccounts bool   `mapstructure:"seedDefaultAccounts"`
}

// RetryDelayDuration returns the connection retry delay
func (d DatabaseConfig) RetryDelayDuration() time.Duration {
	return time.Duration(d.RetryDelay) * time.Second
}

// Validate returns every problem found, or nil
func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case "sqlite":
		if strings.TrimSpace(c.Database.Path) == "" {
			problems = append(problems, "database.path is required for sqlite")
		}
	case "postgres", "mysql":
		if c.Database.Host == "" {
			problems = append(problems, "database.host is required")
		}
		if c.Database.Name == "" {
			problems = append(problems, "database.name is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported database.driver %q", c.Database.Driver))
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid logger.level %q", c.Logger.Level))
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("invalid logger.format %q", c.Logger.Format))
	}
	if c.Logger.Output == "" {
		problems = append(problems, "logger.output is required")
	}

	switch c.Security.PINHashAlgorithm {
	case "sha256":
	case "pbkdf2":
		if c.Security.PINPepper == "" {
			problems = append(problems, "security.pinPepper is required for pbkdf2")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported security.pinHashAlgorithm %q", c.Security.PINHashAlgorithm))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
