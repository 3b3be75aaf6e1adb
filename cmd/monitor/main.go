package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	config "github.com/NordCoder/uptime-monitor/internal/config/monitor"
	"github.com/NordCoder/uptime-monitor/internal/obs"
	"github.com/NordCoder/uptime-monitor/internal/obs/retry"
	"github.com/NordCoder/uptime-monitor/internal/outbox"
	kafkaRepo "github.com/NordCoder/uptime-monitor/internal/repository/kafka"
	pg "github.com/NordCoder/uptime-monitor/internal/repository/postgres"
	"github.com/NordCoder/uptime-monitor/internal/repository/webhook"
	"github.com/NordCoder/uptime-monitor/internal/services/monitor"
	"github.com/NordCoder/uptime-monitor/internal/services/monitor/repo"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to monitor yaml config")
	once := flag.Bool("once", false, "run a single cycle and exit")
	flag.Parse()

	// init
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// logger
	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()
	l.Info("starting monitor",
		zap.String("schedule", cfg.Monitor.Schedule),
		zap.Int("workers", cfg.Monitor.Workers),
		zap.Bool("events", cfg.Events.Enable),
		zap.String("metrics_addr", cfg.Monitor.MetricsAddr),
	)

	schedule, err := monitor.ParseSchedule(cfg.Monitor.Schedule)
	if err != nil {
		l.Fatal("schedule", zap.Error(err))
	}

	// otel
	otelCloser, err := obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig())
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}

	// db
	db, err := pg.NewDB(ctx, cfg.DB)
	if err != nil {
		l.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// run metrics server
	ms := obs.BootstrapMetricsServer(cfg.Monitor.MetricsAddr, db.Ping, l)

	// wiring
	checkRepo := pg.NewCheckRepo(db)
	historyRepo := pg.NewHistoryRepo(db)
	tx := pg.NewTransactor(db, l)

	uc := &monitor.Usecase{
		Log:     l,
		Checks:  checkRepo,
		History: historyRepo,
		Tx:      tx,
		Gate:    monitor.Gate{Clock: monitor.SystemClock{}},
		Prober: &monitor.HTTPProber{
			Client:    monitor.NewHTTPClient(cfg.HTTP),
			UserAgent: cfg.HTTP.UserAgent,
			Clock:     monitor.SystemClock{},
		},
		Notifier: &monitor.Notifier{
			Sender:               webhook.New(cfg.Notify.Timeout, cfg.HTTP.UserAgent),
			SuppressRepeatErrors: cfg.Notify.SuppressRepeatErrors,
			Timeout:              cfg.Notify.Timeout,
		},
		Workers: cfg.Monitor.Workers,
	}

	// events
	var (
		producer *kafkaRepo.Producer
		bg       sync.WaitGroup
	)
	if cfg.Events.Enable {
		topic := kafkaRepo.TopicSpec{
			Name:              cfg.Events.Topic,
			NumPartitions:     cfg.Events.Partitions,
			ReplicationFactor: cfg.Events.ReplicationFactor,
			MaxWait:           30 * time.Second,
		}
		if err := kafkaRepo.EnsureTopic(ctx, cfg.Events.Brokers, topic, l); err != nil {
			l.Warn("ensure topic failed, relying on broker auto-create", zap.Error(err))
		}
		producer = kafkaRepo.NewProducer(cfg.Events.Brokers, cfg.Events.Topic).WithLogger(l)
		outboxRepo := pg.NewOutboxRepo(db)
		uc.Events = repo.Events{Outbox: outboxRepo}

		dispatch := outbox.MakeGlobalOutboxHandler(
			kafkaRepo.NewStatusEventsKafka(producer),
			retry.PublishPolicy("status_changed", l),
		)
		ob := outbox.NewOutboxRunner(l, outboxRepo, dispatch,
			cfg.Events.Workers, cfg.Events.BatchSize, cfg.Events.PollInterval, cfg.Events.InProgressTTL)
		bg.Add(1)
		go func() {
			defer bg.Done()
			ob.Run(ctx)
		}()
	}

	runner := monitor.NewRunner(l, uc, schedule)

	// run
	errCh := make(chan error, 1)
	go func() {
		if *once {
			_, err := runner.RunOnce(ctx)
			errCh <- err
			return
		}
		errCh <- runner.Run(ctx)
	}()

	l.Info("monitor started")

	// loop
	select {
	case <-ctx.Done():
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("runner error", zap.Error(err))
		}
	}
	stop()
	bg.Wait()

	// graceful shutdown
	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var closeErr error
	closeErr = multierr.Append(closeErr, ms.Shutdown(shCtx))
	if producer != nil {
		closeErr = multierr.Append(closeErr, producer.Close())
	}
	closeErr = multierr.Append(closeErr, otelCloser.Shutdown(shCtx))
	if closeErr != nil {
		l.Warn("shutdown", zap.Error(closeErr))
	}
	l.Info("bye")
}
