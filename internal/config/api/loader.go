package api_config

import (
	"github.com/NordCoder/uptime-monitor/internal/config"
)

func Load(path string) (*Config, error) {
	v, err := config.NewViper(path)
	if err != nil {
		return nil, err
	}
	config.SetCommonDefaults(v, "uptime-api")
	v.SetDefault("db.max_conns", 20)
	v.SetDefault("db.min_conns", 5)

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "5s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.graceful_timeout", "15s")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.history_limit", 1000)

	if err := config.BindLegacyEnv(v); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.address", "SERVER_ADDRESS", "ADDRESS"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.port", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DB.DSN == "" {
		return nil, config.ErrConfig("db.dsn is empty")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, config.ErrConfig("server.port out of range")
	}
	if _, err := cfg.App.ShortVersion(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
