package monitor

import (
	"time"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

// Older releases compared Hourly against the one-week threshold (copy/paste
// defect). Hourly now means one hour.
var intervals = map[check.Frequency]time.Duration{
	check.Hourly: time.Hour,
	check.Daily:  24 * time.Hour,
	check.Weekly: 7 * 24 * time.Hour,
}

// Interval is the minimum time between two probes of a check with frequency f.
func Interval(f check.Frequency) (time.Duration, bool) {
	d, ok := intervals[f]
	return d, ok
}

// Due reports whether a check with frequency f whose latest record is last
// should be probed at now. A check without history is always due and the
// interval boundary itself counts as due. Unknown frequencies are never due.
func Due(f check.Frequency, last *history.History, now time.Time) bool {
	interval, ok := Interval(f)
	if !ok {
		return false
	}
	if last == nil {
		return true
	}
	return now.Sub(last.CreatedAt) >= interval
}

type Gate struct {
	Clock Clock
}

func (g Gate) Due(c *check.Check, last *history.History) bool {
	return Due(c.Frequency, last, g.Clock.Now())
}
