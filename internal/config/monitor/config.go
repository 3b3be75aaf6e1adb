package monitor_config

import (
	"time"

	"github.com/NordCoder/uptime-monitor/internal/config"
	pginfra "github.com/NordCoder/uptime-monitor/internal/repository/postgres"
)

type Monitor struct {
	// Schedule is a cron spec ("@every 1h", "*/5 * * * *") or a plain duration ("90s").
	Schedule    string `mapstructure:"schedule"`
	Workers     int    `mapstructure:"workers"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type HTTP struct {
	// Timeout of zero leaves only the transport defaults in place.
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	FollowRedirects bool          `mapstructure:"follow_redirects"`
	VerifyTLS       bool          `mapstructure:"verify_tls"`
}

type Notify struct {
	SuppressRepeatErrors bool          `mapstructure:"suppress_repeat_errors"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

type Events struct {
	Enable            bool          `mapstructure:"enable"`
	Brokers           []string      `mapstructure:"brokers"`
	Topic             string        `mapstructure:"topic"`
	Partitions        int           `mapstructure:"partitions"`
	ReplicationFactor int           `mapstructure:"replication_factor"`
	Workers           int           `mapstructure:"workers"`
	BatchSize         int           `mapstructure:"batch_size"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	InProgressTTL     time.Duration `mapstructure:"in_progress_ttl"`
}

type Config struct {
	App     config.App     `mapstructure:"app"`
	Log     config.Log     `mapstructure:"log"`
	OTEL    config.OTEL    `mapstructure:"otel"`
	DB      pginfra.Config `mapstructure:"db"`
	Monitor Monitor        `mapstructure:"monitor"`
	HTTP    HTTP           `mapstructure:"http"`
	Notify  Notify         `mapstructure:"notify"`
	Events  Events         `mapstructure:"events"`
}
