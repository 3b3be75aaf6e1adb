package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []notification.WebhookPayload
	urls []string
	err  error
}

func (s *fakeSender) PostWebhook(_ context.Context, url string, p notification.WebhookPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p)
	s.urls = append(s.urls, url)
	return s.err
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type fakeEvents struct {
	mu  sync.Mutex
	evs []notification.StatusChanged
}

func (e *fakeEvents) StatusChanged(_ context.Context, ev notification.StatusChanged) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evs = append(e.evs, ev)
	return nil
}
