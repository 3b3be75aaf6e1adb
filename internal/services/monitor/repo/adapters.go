package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
	"github.com/NordCoder/uptime-monitor/internal/domain/outbox"
)

var _ notification.EventSink = Events{}

// Events writes status_changed events into the outbox. Called inside the
// history transaction, so the row only becomes visible if the append commits.
type Events struct{ Outbox outbox.Repository }

func (e Events) StatusChanged(ctx context.Context, ev notification.StatusChanged) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal status changed: %w", err)
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	return e.Outbox.Enqueue(ctx, outbox.Message{
		IdempotencyKey: fmt.Sprintf("status:%s:%d", ev.CheckID, ev.At.UnixNano()),
		Kind:           outbox.KindStatusChanged,
		Data:           data,
		Status:         outbox.StatusCreated,
		Traceparent:    carrier.Get("traceparent"),
		Tracestate:     carrier.Get("tracestate"),
		Baggage:        carrier.Get("baggage"),
	})
}
