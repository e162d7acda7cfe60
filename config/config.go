package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes all the environment variables.
const EnvPrefix = "CONSOLE_"

type (
	// Config keeps both the console client and server settings.
	Config struct {
		// Client
		ServerURL                string        `env:"SERVER_URL" envDefault:"http://127.0.0.1:7351" mapstructure:"server_url"`
		Token                    string        `env:"TOKEN" mapstructure:"token"`
		Timeout                  time.Duration `env:"TIMEOUT" envDefault:"5s" mapstructure:"timeout"`
		Unwrap                   bool          `env:"UNWRAP" mapstructure:"unwrap"`
		InvalidateOnRuntimeError bool          `env:"INVALIDATE_ON_RUNTIME_ERROR" envDefault:"true" mapstructure:"invalidate_on_runtime_error"`
		// Server
		Listen          string        `env:"LISTEN" envDefault:":7351" mapstructure:"listen"`
		SigningKey      string        `env:"SIGNING_KEY" envDefault:"defaultsigningkey" mapstructure:"signing_key"`
		AdminUsername   string        `env:"ADMIN_USERNAME" envDefault:"admin" mapstructure:"admin_username"`
		AdminPassword   string        `env:"ADMIN_PASSWORD" envDefault:"password" mapstructure:"admin_password"`
		TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"24h" mapstructure:"token_ttl"`
		SeedFile        string        `env:"SEED_FILE" mapstructure:"seed_file"`
		StoragePageSize int           `env:"STORAGE_PAGE_SIZE" envDefault:"100" mapstructure:"storage_page_size"`
		UsersPageSize   int           `env:"USERS_PAGE_SIZE" envDefault:"50" mapstructure:"users_page_size"`
		MonitorPeriod   time.Duration `env:"MONITOR_PERIOD" envDefault:"5s" mapstructure:"monitor_period"`
		//
		Log LogConfig `envPrefix:"LOG_" mapstructure:"log"`
	}

	// LogConfig keeps the logger settings, an empty File logs to stderr.
	LogConfig struct {
		Level      string `env:"LEVEL" envDefault:"info" mapstructure:"level"`
		Format     string `env:"FORMAT" envDefault:"text" mapstructure:"format"`
		File       string `env:"FILE" mapstructure:"file"`
		MaxSize    int    `env:"MAX_SIZE" envDefault:"100" mapstructure:"max_size"`
		MaxBackups int    `env:"MAX_BACKUPS" envDefault:"3" mapstructure:"max_backups"`
		MaxAge     int    `env:"MAX_AGE" envDefault:"7" mapstructure:"max_age"`
		Compress   bool   `env:"COMPRESS" mapstructure:"compress"`
	}
)

// Validate checks the config values.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%s: must be GT 0", "timeout")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%s: must be GT 0", "token_ttl")
	}
	if c.StoragePageSize <= 0 {
		return fmt.Errorf("%s: must be GT 0", "storage_page_size")
	}
	if c.UsersPageSize <= 0 {
		return fmt.Errorf("%s: must be GT 0", "users_page_size")
	}
	if c.MonitorPeriod <= 0 {
		return fmt.Errorf("%s: must be GT 0", "monitor_period")
	}

	return c.Log.Validate()
}

// Validate checks the logger config values.
func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s: should be one of 'debug', 'info', 'warn' or 'error'", "log.level")
	}
	switch strings.ToLower(c.Format) {
	case "text", "console", "json":
	default:
		return fmt.Errorf("%s: should be one of 'text' or 'json'", "log.format")
	}

	return nil
}

// Load builds the Config: defaults and CONSOLE_* env vars, then the optional config file (YAML, TOML or JSON) on top.
func Load(filePath string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if filePath != "" {
		v := viper.New()
		v.SetConfigFile(filePath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file (%s): %w", filePath, err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("decoding config file (%s): %w", filePath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
