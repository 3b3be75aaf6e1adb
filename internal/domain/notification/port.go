package notification

import "context"

type WebhookSender interface {
	PostWebhook(ctx context.Context, url string, p WebhookPayload) error
}

type EventSink interface {
	StatusChanged(ctx context.Context, ev StatusChanged) error
}
