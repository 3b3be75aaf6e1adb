package api_config

import (
	"time"

	"github.com/NordCoder/uptime-monitor/internal/config"
	pginfra "github.com/NordCoder/uptime-monitor/internal/repository/postgres"
)

type Server struct {
	Address         string        `mapstructure:"address"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	HistoryLimit    int           `mapstructure:"history_limit"`
}

type Config struct {
	App    config.App     `mapstructure:"app"`
	Log    config.Log     `mapstructure:"log"`
	OTEL   config.OTEL    `mapstructure:"otel"`
	DB     pginfra.Config `mapstructure:"db"`
	Server Server         `mapstructure:"server"`
}
