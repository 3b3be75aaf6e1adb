package monitor_config

import (
	"github.com/NordCoder/uptime-monitor/internal/config"
)

func Load(path string) (*Config, error) {
	v, err := config.NewViper(path)
	if err != nil {
		return nil, err
	}
	config.SetCommonDefaults(v, "uptime-monitor")

	v.SetDefault("monitor.schedule", "@every 1h")
	v.SetDefault("monitor.workers", 16)
	v.SetDefault("monitor.metrics_addr", ":8082")

	v.SetDefault("http.timeout", "0s")
	v.SetDefault("http.user_agent", "uptime-monitor/1.0")
	v.SetDefault("http.follow_redirects", true)
	v.SetDefault("http.verify_tls", true)

	v.SetDefault("notify.suppress_repeat_errors", false)
	v.SetDefault("notify.timeout", "10s")

	v.SetDefault("events.enable", false)
	v.SetDefault("events.brokers", []string{"localhost:9094"})
	v.SetDefault("events.topic", "uptime.status.changed")
	v.SetDefault("events.partitions", 3)
	v.SetDefault("events.replication_factor", 1)
	v.SetDefault("events.workers", 2)
	v.SetDefault("events.batch_size", 100)
	v.SetDefault("events.poll_interval", "1s")
	v.SetDefault("events.in_progress_ttl", "30s")

	if err := config.BindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DB.DSN == "" {
		return nil, config.ErrConfig("db.dsn is empty")
	}
	if cfg.Monitor.Workers <= 0 {
		return nil, config.ErrConfig("monitor.workers must be positive")
	}
	if cfg.Events.Enable && (len(cfg.Events.Brokers) == 0 || cfg.Events.Topic == "") {
		return nil, config.ErrConfig("events.enable requires brokers and topic")
	}
	if _, err := cfg.App.ShortVersion(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
