package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	DatabaseURL    string `env:"DATABASE_URL,required" validate:"required"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START"       envDefault:"true"`
	MetricsPort    string `env:"METRICS_PORT"           envDefault:"9090"`

	JWTSecret    string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTExpires   time.Duration `env:"JWT_EXPIRES"          envDefault:"168h" validate:"min=1m,max=8760h"`
	BcryptRounds int           `env:"BCRYPT_ROUNDS"        envDefault:"10"   validate:"min=4,max=31"`

	// Federated login is disabled when empty.
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	InviteLink   string `env:"INVITE_LINK"    envDefault:"http://localhost:4200/auth" validate:"url"`

	CORSOrigins []string `env:"CORS_ORIGIN" envDefault:"http://localhost:4200" envSeparator:","`

	OTPStore string `env:"OTP_STORE" envDefault:"postgres" validate:"oneof=postgres redis"`
	RedisURL string `env:"REDIS_URL"                       validate:"required_if=OTPStore redis"`

	ReminderCron string `env:"REMINDER_CRON" envDefault:"0 10 * * *" validate:"required"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FederatedEnabled reports whether Google sign-in is configured.
func (c *Config) FederatedEnabled() bool {
	return c.GoogleClientID != ""
}
