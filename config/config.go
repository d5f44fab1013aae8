package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mail      MailConfig      `mapstructure:"mail"`
	Email     EmailConfig     `mapstructure:"email"`
	Log       LogConfig       `mapstructure:"log"`
	Feature   FeatureConfig   `mapstructure:"feature"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	BaseURL        string        `mapstructure:"base_url"`
	CORS           CORSConfig    `mapstructure:"cors"`
	StaticDir      string        `mapstructure:"static_dir"`
	UploadDir      string        `mapstructure:"upload_dir"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	SessionSecret  string        `mapstructure:"session_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	SecureCookie   bool          `mapstructure:"secure_cookie"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings. Optional: without it reference data is
// file backed and the dispatch log stays in memory.
type DatabaseConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig session store / rate limit backend. Optional.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Mail relays
const (
	RelaySMTP   = "smtp"
	RelayResend = "resend"
	RelaySES    = "ses"
)

// MailConfig outbound relay settings
type MailConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Relay        string        `mapstructure:"relay"`
	SMTPHost     string        `mapstructure:"smtp_host"`
	SMTPPort     int           `mapstructure:"smtp_port"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	From         string        `mapstructure:"from"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ResendAPIKey string        `mapstructure:"resend_api_key"`
	SESRegion    string        `mapstructure:"ses_region"`
}

// EmailConfig composer settings
type EmailConfig struct {
	Signature string `mapstructure:"signature"`
	Timezone  string `mapstructure:"timezone"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Auto-fill clear modes
const (
	ClearOnMatch = "on_match"
	ClearAlways  = "always"
)

// Form layouts
const (
	LayoutStudents = "students"
	LayoutSections = "sections"
)

// FeatureConfig toggles between the two historical form/email variants
type FeatureConfig struct {
	RequireClassSection bool   `mapstructure:"require_class_section"`
	AutoFillClearMode   string `mapstructure:"autofill_clear_mode"`
	FormLayout          string `mapstructure:"form_layout"`
}

// RateLimitConfig per-IP limit on the mutating API (needs redis)
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// Load reads configuration.
// Precedence: environment (ODMAIL_*) > config file > .env > defaults
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.max_upload_bytes", 5<<20)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.session_secret", "od-mail-dev-session-secret")
	v.SetDefault("server.session_ttl", "12h")
	v.SetDefault("server.secure_cookie", false)

	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "od_mail")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Kolkata")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.relay", RelaySMTP)
	v.SetDefault("mail.smtp_host", "localhost")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.timeout", "10s")
	v.SetDefault("mail.resend_api_key", "")
	v.SetDefault("mail.ses_region", "ap-south-1")

	v.SetDefault("email.signature", "ACC Student Coordinator")
	v.SetDefault("email.timezone", "Asia/Kolkata")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("feature.require_class_section", false)
	v.SetDefault("feature.autofill_clear_mode", ClearOnMatch)
	v.SetDefault("feature.form_layout", LayoutStudents)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 60)
	v.SetDefault("rate_limit.window", "1m")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("ODMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings that would otherwise fail at request time
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid config: server.max_upload_bytes must be positive")
	}
	if len(c.Server.SessionSecret) < 16 {
		return fmt.Errorf("invalid config: server.session_secret must be at least 16 characters")
	}

	switch c.Feature.AutoFillClearMode {
	case ClearOnMatch, ClearAlways:
	default:
		return fmt.Errorf("invalid config: feature.autofill_clear_mode %q (want %s or %s)",
			c.Feature.AutoFillClearMode, ClearOnMatch, ClearAlways)
	}
	switch c.Feature.FormLayout {
	case LayoutStudents, LayoutSections:
	default:
		return fmt.Errorf("invalid config: feature.form_layout %q (want %s or %s)",
			c.Feature.FormLayout, LayoutStudents, LayoutSections)
	}

	if c.Mail.Enabled {
		if c.Mail.From == "" {
			return fmt.Errorf("invalid config: mail.from is required when mail is enabled")
		}
		switch c.Mail.Relay {
		case RelaySMTP:
			if c.Mail.SMTPHost == "" || c.Mail.SMTPPort <= 0 {
				return fmt.Errorf("invalid config: mail.smtp_host and mail.smtp_port are required for the smtp relay")
			}
		case RelayResend:
			if c.Mail.ResendAPIKey == "" {
				return fmt.Errorf("invalid config: mail.resend_api_key is required for the resend relay")
			}
		case RelaySES:
			if c.Mail.SESRegion == "" {
				return fmt.Errorf("invalid config: mail.ses_region is required for the ses relay")
			}
		default:
			return fmt.Errorf("invalid config: unknown mail.relay %q", c.Mail.Relay)
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid config: rate_limit.limit and rate_limit.window must be positive")
	}
	return nil
}
