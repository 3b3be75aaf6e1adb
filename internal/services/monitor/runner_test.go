package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunSurvivesListFailures(t *testing.T) {
	lister := &failingLister{}
	e := newEnv(nil)
	e.uc.Checks = lister

	schedule, err := ParseSchedule("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var waits []time.Duration
	r := NewRunner(zap.NewNop(), e.uc, schedule)
	r.Clock = e.clock
	r.Sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		if len(waits) == 3 {
			cancel()
		}
		return ctx.Err()
	}

	err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(3), lister.calls.Load())
	assert.Equal(t, []time.Duration{time.Hour, time.Hour, time.Hour}, waits)
}

func TestRunOnceReportsCycle(t *testing.T) {
	e := newEnv(nil)
	r := NewRunner(zap.NewNop(), e.uc, nil)
	r.Clock = e.clock

	rep, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleReport{}, rep)
}

func TestParseSchedule(t *testing.T) {
	from := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	s, err := ParseSchedule("90s")
	require.NoError(t, err)
	assert.Equal(t, from.Add(90*time.Second), s.Next(from))

	s, err = ParseSchedule("@every 1h")
	require.NoError(t, err)
	assert.Equal(t, from.Add(time.Hour), s.Next(from))

	s, err = ParseSchedule("@daily")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), s.Next(from))

	_, err = ParseSchedule("500ms")
	assert.Error(t, err)
	_, err = ParseSchedule("every now and then")
	assert.Error(t, err)
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}
