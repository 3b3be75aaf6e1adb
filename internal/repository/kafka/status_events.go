package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
)

type StatusEventsKafka struct {
	p *Producer
}

func NewStatusEventsKafka(p *Producer) *StatusEventsKafka { return &StatusEventsKafka{p: p} }

// PublishStatusChanged sends ev as JSON keyed by the check id.
func (e *StatusEventsKafka) PublishStatusChanged(ctx context.Context, ev notification.StatusChanged) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal status changed: %w", err)
	}
	return e.p.Publish(ctx, []byte(ev.CheckID.String()), value)
}
