package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Log        LogConfig        `mapstructure:"log"`
	Relay      RelayConfig      `mapstructure:"relay"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Email      EmailConfig      `mapstructure:"email"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	TLS  struct {
		Enabled  bool   `mapstructure:"enabled"`
		CertFile string `mapstructure:"cert_file"`
		KeyFile  string `mapstructure:"key_file"`
	} `mapstructure:"tls"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// DSN returns the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RelayConfig holds the message relay pipeline configuration
type RelayConfig struct {
	// MaxMessageLength is the maximum accepted message length in characters
	MaxMessageLength int `mapstructure:"max_message_length"`
	// Window is the fixed rate-limit window per sender identity
	Window time.Duration `mapstructure:"window"`
	// Cap is the maximum number of sends per sender identity per window
	Cap int `mapstructure:"cap"`
	// BurstLimiting controls the transport-level per-IP limiter
	BurstLimiting BurstLimitingConfig `mapstructure:"burst_limiting"`
}

// BurstLimitingConfig holds the Redis-backed per-IP limiter configuration
type BurstLimitingConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// ModerationConfig holds content classifier configuration
type ModerationConfig struct {
	// Provider selects the classifier backend: "gemini" or "none"
	Provider string `mapstructure:"provider"`
	// APIKey authenticates against the classifier API
	APIKey string `mapstructure:"api_key"`
	// Model is the classifier model name
	Model string `mapstructure:"model"`
	// BaseURL overrides the classifier endpoint (used in tests)
	BaseURL string `mapstructure:"base_url"`
	// FailOpen controls behavior when the classifier is unavailable:
	// true lets the message through, false rejects it.
	FailOpen bool `mapstructure:"fail_open"`
	// Timeout bounds a single classification call
	Timeout time.Duration `mapstructure:"timeout"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider is the email provider to use: "resend" or "gmail"
	Provider string `mapstructure:"provider"`
	// AppName is the application name shown in emails
	AppName string `mapstructure:"app_name"`
	// FromAddress is the static "from" address for outbound notifications
	FromAddress string `mapstructure:"from_address"`
	// FromName is the display name for the sender
	FromName string `mapstructure:"from_name"`
	// Resend holds Resend API configuration
	Resend ResendEmailConfig `mapstructure:"resend"`
	// Gmail holds Gmail API configuration
	Gmail GmailEmailConfig `mapstructure:"gmail"`
}

// ResendEmailConfig holds Resend API configuration
type ResendEmailConfig struct {
	// APIKey is the Resend API key
	APIKey string `mapstructure:"api_key"`
	// BaseURL overrides the API endpoint (used in tests)
	BaseURL string `mapstructure:"base_url"`
}

// GmailEmailConfig holds Gmail API configuration
type GmailEmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stillgrateful")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("STILLGRATEFUL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.tls.enabled", false)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "stillgrateful")
	v.SetDefault("database.user", "stillgrateful")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 25)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Relay defaults
	v.SetDefault("relay.max_message_length", 2000)
	v.SetDefault("relay.window", "24h")
	v.SetDefault("relay.cap", 5)
	v.SetDefault("relay.burst_limiting.enabled", true)
	v.SetDefault("relay.burst_limiting.limit", 20)
	v.SetDefault("relay.burst_limiting.window", "1m")

	// Moderation defaults
	v.SetDefault("moderation.provider", "gemini")
	v.SetDefault("moderation.model", "gemini-2.0-flash")
	v.SetDefault("moderation.fail_open", true)
	v.SetDefault("moderation.timeout", "15s")

	// Email defaults
	v.SetDefault("email.provider", "resend")
	v.SetDefault("email.app_name", "StillGrateful")
	v.SetDefault("email.from_address", "")
	v.SetDefault("email.from_name", "StillGrateful")
	v.SetDefault("email.resend.base_url", "https://api.resend.com")
}
