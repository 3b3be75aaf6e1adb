package monitor

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	config "github.com/NordCoder/uptime-monitor/internal/config/monitor"
	"github.com/NordCoder/uptime-monitor/internal/obs"
)

// NewHTTPClient builds the probe client. A zero cfg.Timeout sets no client
// deadline, leaving only the transport's own limits.
func NewHTTPClient(cfg config.HTTP) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS,
			MinVersion:         tls.VersionTLS12,
		},
	}

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: obs.HTTPTransport(transport),
	}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}
