// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port          string        `env:"PARLTRACK_PORT" envDefault:"8080"`
	DBPath        string        `env:"PARLTRACK_DB_PATH" envDefault:"parltrack.db"`
	LogLevel      string        `env:"PARLTRACK_LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"PARLTRACK_LOG_FORMAT" envDefault:"text"`
	AdminLogin    string        `env:"PARLTRACK_ADMIN_LOGIN" envDefault:"admin"`
	AdminPassword string        `env:"PARLTRACK_ADMIN_PASSWORD" envDefault:"admin"`
	SessionTTL    time.Duration `env:"PARLTRACK_SESSION_TTL" envDefault:"720h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
