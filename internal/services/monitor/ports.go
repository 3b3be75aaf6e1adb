package monitor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

type CheckLister interface {
	List(ctx context.Context) ([]*check.Check, error)
}

type HistoryStore interface {
	// Latest returns nil, nil for a check that was never probed.
	Latest(ctx context.Context, checkID uuid.UUID) (*history.History, error)
	Append(ctx context.Context, h *history.History) error
}

type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Prober interface {
	Probe(ctx context.Context, c *check.Check) Result
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
