package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSchedule = "@every 1h"

type Cycler interface {
	Cycle(ctx context.Context) (CycleReport, error)
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ParseSchedule accepts a plain duration ("1h", "90s") or anything
// cron.ParseStandard understands, including "@every 1h" and "@daily".
func ParseSchedule(spec string) (cron.Schedule, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if d, err := time.ParseDuration(spec); err == nil {
		if d < time.Second {
			return nil, errors.New("schedule interval must be at least 1s")
		}
		return cron.Every(d), nil
	}
	return cron.ParseStandard(spec)
}

type Runner struct {
	Log      *zap.Logger
	UC       Cycler
	Schedule cron.Schedule
	Clock    Clock
	Sleep    Sleeper
}

func NewRunner(log *zap.Logger, uc Cycler, schedule cron.Schedule) *Runner {
	return &Runner{
		Log:      log,
		UC:       uc,
		Schedule: schedule,
		Clock:    SystemClock{},
		Sleep:    Sleep,
	}
}

// RunOnce executes a single cycle synchronously.
func (r *Runner) RunOnce(ctx context.Context) (CycleReport, error) {
	start := r.Clock.Now()
	rep, err := r.UC.Cycle(ctx)
	mCycleDur.Observe(r.Clock.Now().Sub(start).Seconds())
	if err != nil {
		mCycles.WithLabelValues("list_error").Inc()
		r.Log.Error("cycle aborted", zap.Error(err))
		return rep, err
	}
	mCycles.WithLabelValues("ok").Inc()
	r.Log.Info("cycle done",
		zap.Int("listed", rep.Listed),
		zap.Int("skipped", rep.Skipped),
		zap.Int("probed", rep.Probed),
		zap.Int("failed", rep.Failed),
		zap.Int("store_errors", rep.StoreErrors),
		zap.Int("notified", rep.Notified),
		zap.Int("notify_errors", rep.NotifyErrors),
	)
	return rep, nil
}

// Run repeats cycles until ctx is done. The next cycle starts at the
// schedule's next activation after the previous one finished, so a failed
// listing still waits a full interval before retrying.
func (r *Runner) Run(ctx context.Context) error {
	r.Log.Info("monitor loop started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = r.RunOnce(ctx)

		now := r.Clock.Now()
		wait := r.Schedule.Next(now).Sub(now)
		r.Log.Debug("sleeping until next cycle", zap.Duration("wait", wait))
		if err := r.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}
