package monitor

import (
	"context"
	"time"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
)

// ShouldNotify fires on Ok->Error, Error->Error and Error->Ok and stays quiet on
// Ok->Ok. A missing previous record counts as Ok. suppressRepeat silences
// Error->Error.
func ShouldNotify(status history.Status, prev *history.History, suppressRepeat bool) bool {
	prevErr := prev.IsError()
	if status == history.StatusError && prevErr && suppressRepeat {
		return false
	}
	return status == history.StatusError || prevErr
}

type Notifier struct {
	Sender               notification.WebhookSender
	SuppressRepeatErrors bool
	// Timeout bounds one delivery; zero means the sender's own limit.
	Timeout time.Duration
}

// Notify posts rec to the check's hook when the rule allows it. attempted is
// false when nothing was sent. Delivery errors are returned for logging only.
func (n *Notifier) Notify(ctx context.Context, c *check.Check, rec, prev *history.History) (attempted bool, err error) {
	if n == nil || n.Sender == nil || !c.HasHook() {
		return false, nil
	}
	if !ShouldNotify(rec.Status, prev, n.SuppressRepeatErrors) {
		return false, nil
	}
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}
	return true, n.Sender.PostWebhook(ctx, *c.Hook, notification.WebhookPayload{
		Check:   c,
		Status:  rec.Status,
		Details: rec.Details,
	})
}
