package monitor

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
	"github.com/NordCoder/uptime-monitor/internal/obs"
)

type Usecase struct {
	Log      *zap.Logger
	Checks   CheckLister
	History  HistoryStore
	// Tx and Events are optional. Without Tx the append runs on its own.
	Tx       Transactor
	Events   notification.EventSink
	Gate     Gate
	Prober   Prober
	Notifier *Notifier
	Workers  int
}

type CycleReport struct {
	Listed       int
	Skipped      int
	Probed       int
	Failed       int
	StoreErrors  int
	Notified     int
	NotifyErrors int
}

func (r *CycleReport) add(o checkOutcome) {
	switch {
	case o.storeErr:
		r.StoreErrors++
	case o.skipped:
		r.Skipped++
	case o.probed:
		r.Probed++
		if o.status == history.StatusError {
			r.Failed++
		}
	}
	if o.notified {
		r.Notified++
	}
	if o.notifyErr {
		r.NotifyErrors++
	}
}

type checkOutcome struct {
	skipped   bool
	probed    bool
	storeErr  bool
	status    history.Status
	notified  bool
	notifyErr bool
}

// Cycle lists every check and runs each through gate, probe, append and
// notify. Only a failed listing is returned as an error; per-check failures
// are logged and counted in the report.
func (u *Usecase) Cycle(ctx context.Context) (CycleReport, error) {
	tr := otel.Tracer("monitor.uc")
	ctx, span := tr.Start(ctx, "monitor.cycle")
	defer span.End()

	var rep CycleReport
	checks, err := u.Checks.List(ctx)
	if err != nil {
		mStoreErrors.WithLabelValues("list").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "list checks")
		return rep, &StoreError{Op: "list", Err: err}
	}
	rep.Listed = len(checks)
	span.SetAttributes(attribute.Int("checks.listed", len(checks)))

	workers := u.Workers
	if workers <= 0 {
		workers = 1
	}
	p := pool.NewWithResults[checkOutcome]().WithMaxGoroutines(workers)
	for _, c := range checks {
		p.Go(func() checkOutcome {
			if ctx.Err() != nil {
				return checkOutcome{}
			}
			return u.processCheck(ctx, c)
		})
	}
	for _, o := range p.Wait() {
		rep.add(o)
	}

	span.SetAttributes(
		attribute.Int("checks.skipped", rep.Skipped),
		attribute.Int("checks.probed", rep.Probed),
		attribute.Int("checks.failed", rep.Failed),
	)
	return rep, nil
}

func (u *Usecase) processCheck(ctx context.Context, c *check.Check) checkOutcome {
	ctx, span := otel.Tracer("monitor.uc").Start(ctx, "monitor.check",
		trace.WithAttributes(
			attribute.String("check.id", c.ID.String()),
			attribute.String("check.url", c.URL),
			attribute.String("check.method", string(c.Method)),
		),
	)
	defer span.End()
	log := obs.WithTrace(ctx, u.Log).With(zap.Stringer("check_id", c.ID))

	prev, err := u.History.Latest(ctx, c.ID)
	if err != nil {
		serr := &StoreError{Op: "latest", CheckID: c.ID, Err: err}
		mStoreErrors.WithLabelValues("latest").Inc()
		span.RecordError(serr)
		log.Warn("read latest history", zap.Error(serr))
		return checkOutcome{storeErr: true}
	}

	if !c.Frequency.Valid() {
		log.Warn("unknown frequency, check skipped", zap.String("frequency", string(c.Frequency)))
		mSkipped.Inc()
		return checkOutcome{skipped: true}
	}
	if !u.Gate.Due(c, prev) {
		mSkipped.Inc()
		return checkOutcome{skipped: true}
	}

	res := u.Prober.Probe(ctx, c)
	if ctx.Err() != nil {
		// shutdown mid-probe, the outcome says nothing about the endpoint
		return checkOutcome{}
	}
	status := res.Status()
	mProbes.WithLabelValues(string(status)).Inc()
	mProbeLatency.Observe(res.Latency.Seconds())
	span.SetAttributes(attribute.String("probe.status", string(status)))

	rec := history.New(c.ID, status, res.Details(), res.FinishedAt.UTC())
	if err := u.persist(ctx, c, rec, prev); err != nil {
		serr := &StoreError{Op: "append", CheckID: c.ID, Err: err}
		mStoreErrors.WithLabelValues("append").Inc()
		span.RecordError(serr)
		log.Warn("append history", zap.Error(serr))
		return checkOutcome{storeErr: true}
	}
	if status == history.StatusError {
		log.Info("probe failed", zap.String("url", c.URL), zap.Stringp("details", rec.Details))
	} else {
		log.Debug("probe ok", zap.String("url", c.URL), zap.Duration("latency", res.Latency))
	}

	out := checkOutcome{probed: true, status: status}
	attempted, err := u.Notifier.Notify(ctx, c, rec, prev)
	switch {
	case err != nil:
		out.notifyErr = true
		mWebhooks.WithLabelValues("error").Inc()
		log.Warn("webhook delivery failed", zap.Error(err))
	case attempted:
		out.notified = true
		mWebhooks.WithLabelValues("ok").Inc()
	}
	return out
}

// persist appends rec and, when the status differs from prev, emits the
// status_changed event in the same transaction.
func (u *Usecase) persist(ctx context.Context, c *check.Check, rec, prev *history.History) error {
	write := func(ctx context.Context) error {
		if err := u.History.Append(ctx, rec); err != nil {
			return err
		}
		if u.Events == nil || (prev != nil && prev.Status == rec.Status) {
			return nil
		}
		ev := notification.StatusChanged{
			CheckID: c.ID,
			URL:     c.URL,
			New:     rec.Status,
			Details: rec.Details,
			At:      rec.CreatedAt,
		}
		if prev != nil {
			old := prev.Status
			ev.Old = &old
		}
		return u.Events.StatusChanged(ctx, ev)
	}
	if u.Tx == nil {
		return write(ctx)
	}
	return u.Tx.WithTx(ctx, write)
}
