package notification

import (
	"time"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
	"github.com/google/uuid"
)

// WebhookPayload is the JSON body POSTed to a check's hook.
type WebhookPayload struct {
	Check   *check.Check   `json:"check"`
	Status  history.Status `json:"status"`
	Details *string        `json:"details"`
}

// StatusChanged is emitted when a new history record differs from the previous one.
// Old is nil for the first record of a check.
type StatusChanged struct {
	CheckID uuid.UUID       `json:"check_id"`
	URL     string          `json:"url"`
	Old     *history.Status `json:"old"`
	New     history.Status  `json:"new"`
	Details *string         `json:"details"`
	At      time.Time       `json:"at"`
}
