package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. ATM_DATABASE_PATH
const EnvPrefix = "ATM"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../.env",
	"../../.env",
}

// LoadConfig loads configuration for the environment named by ATM_ENV.
// A missing config file is not an error; defaults and environment variables apply.
func LoadConfig() (*Config, error) {
	loadDotEnvFile()

	return load(getEnvironment(), ConfigPaths)
}

func load(env string, paths []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// loadDotEnvFile loads the first .env file found. Variables already set in
// the process environment win.
func loadDotEnvFile() {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// setDefaults makes the program runnable with no config file at all
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "atm_accounts.db")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "atm.log")

	v.SetDefault("security.pinHashAlgorithm", "sha256")
	v.SetDefault("security.pinPepper", "")
	v.SetDefault("security.pbkdf2Iterations", 100000)

	v.SetDefault("atm.currencySymbol", "₹")
	v.SetDefault("atm.seedDefaultAccounts", true)
}

// bindEnv binds the camelCase keys whose environment names would otherwise
// keep their inner capitals, e.g. ATM_DATABASE_SSL_MODE
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("database.sslMode", "ATM_DATABASE_SSL_MODE")
	_ = v.BindEnv("database.maxOpenConns", "ATM_DATABASE_MAX_OPEN_CONNS")
	_ = v.BindEnv("database.logLevel", "ATM_DATABASE_LOG_LEVEL")
	_ = v.BindEnv("database.retryAttempts", "ATM_DATABASE_RETRY_ATTEMPTS")
	_ = v.BindEnv("database.retryDelay", "ATM_DATABASE_RETRY_DELAY")
	_ = v.BindEnv("security.pinHashAlgorithm", "ATM_SECURITY_PIN_HASH_ALGORITHM")
	_ = v.BindEnv("security.pinPepper", "ATM_SECURITY_PIN_PEPPER")
	_ = v.BindEnv("security.pbkdf2Iterations", "ATM_SECURITY_PBKDF2_ITERATIONS")
	_ = v.BindEnv("atm.currencySymbol", "ATM_ATM_CURRENCY_SYMBOL")
	_ = v.BindEnv("atm.seedDefaultAccounts", "ATM_ATM_SEED_DEFAULT_ACCOUNTS")
}

// getEnvironment determines the environment from ATM_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv("ATM_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}
