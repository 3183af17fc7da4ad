package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
	DBConnectTimeoutS  int `env:"DB_CONNECT_TIMEOUT_S" envDefault:"30"`

	FailureRetentionDays int `env:"FAILURE_RETENTION_DAYS" envDefault:"90"`
	SweepIntervalS       int `env:"SWEEP_INTERVAL_S" envDefault:"3600"`
	FailureListLimit     int `env:"FAILURE_LIST_LIMIT" envDefault:"50"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.FailureRetentionDays < 1 {
		return fmt.Errorf("FAILURE_RETENTION_DAYS must be at least 1, got %d", c.FailureRetentionDays)
	}
	if c.SweepIntervalS < 1 {
		return fmt.Errorf("SWEEP_INTERVAL_S must be at least 1, got %d", c.SweepIntervalS)
	}
	if c.FailureListLimit < 1 {
		return fmt.Errorf("FAILURE_LIST_LIMIT must be at least 1, got %d", c.FailureListLimit)
	}
	return nil
}

func (c Config) Retention() time.Duration {
	return time.Duration(c.FailureRetentionDays) * 24 * time.Hour
}

func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalS) * time.Second
}

func (c Config) ConnectTimeout() time.Duration {
	return time.Duration(c.DBConnectTimeoutS) * time.Second
}
