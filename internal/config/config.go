package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

const QR_IMAGE_SIZE = 512

// Token issuance modes. See TokenMode in Config.
const (
	TokenModeSingleUse = "single_use"
	TokenModePermanent = "permanent"
)

// Clamp bounds for caller-supplied token expiry in single_use mode.
const (
	TokenMinTTLMinutes = 15
	TokenMaxTTLMinutes = 8 * 60
)

type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// Notifications are skipped entirely when disabled.
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	// Secret key for signing session tokens. Must be set in production.
	Secret string `mapstructure:"secret"`

	// Clock token issuance mode: single_use or permanent.
	TokenMode string `mapstructure:"token_mode"`
	// Default expiry for single_use tokens when the caller omits one, in minutes.
	TokenDefaultTTL uint `mapstructure:"token_default_ttl"`

	LogLevel string `mapstructure:"log_level"`

	// Session token TTL in hours.
	SessionTTL uint `mapstructure:"session_ttl"`

	// Base URL for the application. May be relative, e.g. /time/, or absolute.
	BaseURL string `mapstructure:"base_url"`

	// Comma separated list of allowed CORS origins for the SPA. Empty means allow all.
	AllowedOrigins string `mapstructure:"allowed_origins"`

	Storage Storage `mapstructure:"storage"`

	Email EmailConfig `mapstructure:"email"`
}

var Cfg *Config

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from config file and environment variables.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")
	v.SetEnvPrefix("")

	if len(configFile) > 0 {
		for _, path := range configFile {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	// Load configuration from environment variables
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	switch cfg.TokenMode {
	case TokenModeSingleUse, TokenModePermanent:
	default:
		slog.Warn("Invalid token mode, defaulting to single_use", "token_mode", cfg.TokenMode)
		cfg.TokenMode = TokenModeSingleUse
	}

	if cfg.TokenDefaultTTL < TokenMinTTLMinutes || cfg.TokenDefaultTTL > TokenMaxTTLMinutes {
		slog.Warn("TOKEN_DEFAULT_TTL outside allowed range, clamping",
			"actual", cfg.TokenDefaultTTL, "min", TokenMinTTLMinutes, "max", TokenMaxTTLMinutes)
		if cfg.TokenDefaultTTL < TokenMinTTLMinutes {
			cfg.TokenDefaultTTL = TokenMinTTLMinutes
		} else {
			cfg.TokenDefaultTTL = TokenMaxTTLMinutes
		}
	}

	// Convert relative sqlite path to absolute instance folder
	if cfg.Storage.SQLite != nil {
		if cfg.Storage.SQLite.Path == ":memory:" {
			// In-memory database, do nothing
		} else if !os.IsPathSeparator(cfg.Storage.SQLite.Path[0]) {
			cfg.Storage.SQLite.Path = fmt.Sprintf("%s/%s", getConfigPath(), cfg.Storage.SQLite.Path)
		}
	}

	// Warn if secret is missing - this is a critical security setting for production
	if cfg.Secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("SECRET configuration variable is required in production")
		} else {
			slog.Warn("Secret is not set. Do not use in production.")
		}
	}

	return &cfg, nil
}
