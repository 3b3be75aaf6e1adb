package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	config "github.com/NordCoder/uptime-monitor/internal/config/api"
	"github.com/NordCoder/uptime-monitor/internal/obs"
	pg "github.com/NordCoder/uptime-monitor/internal/repository/postgres"
	"github.com/NordCoder/uptime-monitor/internal/services/api"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to api yaml config")
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

	version, err := cfg.App.ShortVersion()
	if err != nil {
		l.Fatal("version", zap.Error(err))
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

	// wiring
	uc := api.NewUsecase(pg.NewCheckRepo(db), pg.NewHistoryRepo(db), pg.NewTransactor(db, l), cfg.Server.HistoryLimit, nil)
	srv := newHTTPServer(cfg.Server, api.NewServer(l, uc, version, db.Ping).Router(cfg.Server.AllowedOrigins))

	// run
	errCh := make(chan error, 1)
	go func() {
		l.Info("http listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-errCh:
		l.Error("http server error", zap.Error(err))
	}

	// graceful shutdown
	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	closeErr := multierr.Combine(srv.Shutdown(shCtx), otelCloser.Shutdown(shCtx))
	if closeErr != nil {
		l.Warn("shutdown", zap.Error(closeErr))
	}
	l.Info("bye")
}
