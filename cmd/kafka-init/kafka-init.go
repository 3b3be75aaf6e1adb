package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	config "github.com/NordCoder/uptime-monitor/internal/config/monitor"
	"github.com/NordCoder/uptime-monitor/internal/obs"
	kafkaRepo "github.com/NordCoder/uptime-monitor/internal/repository/kafka"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to monitor yaml config")
	wait := flag.Duration("wait", 30*time.Second, "how long to wait for the topic to become ready")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *wait+30*time.Second)
	defer cancel()

	spec := kafkaRepo.TopicSpec{
		Name:              cfg.Events.Topic,
		NumPartitions:     cfg.Events.Partitions,
		ReplicationFactor: cfg.Events.ReplicationFactor,
		MaxWait:           *wait,
	}
	if err := kafkaRepo.EnsureTopic(ctx, cfg.Events.Brokers, spec, l); err != nil {
		l.Fatal("ensure topic", zap.String("topic", spec.Name), zap.Error(err))
	}
	l.Info("kafka-init ok", zap.String("topic", spec.Name), zap.Strings("brokers", cfg.Events.Brokers))
}
