package main

import (
	"net"
	"net/http"
	"strconv"

	config "github.com/NordCoder/uptime-monitor/internal/config/api"
	"github.com/NordCoder/uptime-monitor/internal/obs"
)

func newHTTPServer(cfg config.Server, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port)),
		Handler:      obs.HTTPHandler(h, "uptime-api"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
