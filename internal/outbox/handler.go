package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
	"github.com/NordCoder/uptime-monitor/internal/domain/outbox"
	"github.com/NordCoder/uptime-monitor/internal/obs/retry"
)

type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, ev notification.StatusChanged) error
}

var (
	outboxHandlerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outbox_handler_latency_seconds",
		Help:    "Latency of outbox handlers including retries.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	outboxHandlerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_handler_errors_total",
		Help: "Errors in outbox handlers (after retries).",
	}, []string{"kind"})
)

func instrument(kind outbox.Kind, h outbox.KindHandler, pol retry.Policy) outbox.KindHandler {
	tr := otel.Tracer("outbox.handler")
	if pol.Name == "" {
		pol.Name = "outbox_" + kind.String()
	}
	return func(ctx context.Context, data []byte) error {
		ctx, span := tr.Start(ctx, "outbox.handle "+kind.String())
		defer span.End()

		start := time.Now()
		err := retry.Do(ctx, func() error { return h(ctx, data) }, pol)
		outboxHandlerLatency.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			outboxHandlerErrors.WithLabelValues(kind.String()).Inc()
		}
		return err
	}
}

// MakeGlobalOutboxHandler routes each outbox kind to pub, wrapped in pol.
func MakeGlobalOutboxHandler(pub StatusPublisher, pol retry.Policy) outbox.GlobalHandler {
	return func(kind outbox.Kind) (outbox.KindHandler, error) {
		switch kind {
		case outbox.KindStatusChanged:
			base := func(ctx context.Context, data []byte) error {
				var ev notification.StatusChanged
				if err := json.Unmarshal(data, &ev); err != nil {
					return fmt.Errorf("unmarshal status-changed payload: %w", err)
				}
				return pub.PublishStatusChanged(ctx, ev)
			}
			return instrument(kind, base, pol), nil
		default:
			return nil, fmt.Errorf("unsupported outbox kind: %d", kind)
		}
	}
}
