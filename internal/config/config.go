// Package config resolves process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings the application needs to start.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	SessionSecret  string
	SessionTTL     time.Duration
	CookieSecure   bool
	RabbitMQURL    string
}

// SetDefaults registers the default value of every optional key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("RABBITMQ_URL", "")
}

// Load reads the configuration from v. DATABASE_DSN and SESSION_SECRET are
// required.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}

	switch {
	case cfg.DatabaseDSN == "":
		return Config{}, fmt.Errorf("DATABASE_DSN is required")
	case cfg.SessionSecret == "":
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	case cfg.SessionTTL <= 0:
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}
