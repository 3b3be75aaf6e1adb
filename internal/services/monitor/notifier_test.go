package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

func TestShouldNotifySequence(t *testing.T) {
	seq := []history.Status{history.StatusOk, history.StatusOk, history.StatusError, history.StatusError, history.StatusOk}
	want := []bool{false, false, true, true, true}

	var prev *history.History
	for i, st := range seq {
		assert.Equal(t, want[i], ShouldNotify(st, prev, false), "index %d", i+1)
		prev = history.New(uuid.Nil, st, nil, time.Time{})
	}
}

func TestShouldNotifySuppressRepeat(t *testing.T) {
	prevErr := history.New(uuid.Nil, history.StatusError, nil, time.Time{})
	assert.False(t, ShouldNotify(history.StatusError, prevErr, true))
	assert.True(t, ShouldNotify(history.StatusOk, prevErr, true))
	assert.True(t, ShouldNotify(history.StatusError, nil, true))
}

func hooked() *check.Check {
	hook := "https://hooks.example.com/abc"
	return &check.Check{ID: uuid.New(), Frequency: check.Hourly, URL: "https://example.com", Method: check.MethodGET, Hook: &hook}
}

func TestNotifierPostsPayload(t *testing.T) {
	sender := &fakeSender{}
	n := &Notifier{Sender: sender}
	c := hooked()
	details := "boom"
	rec := history.New(c.ID, history.StatusError, &details, time.Now())

	attempted, err := n.Notify(context.Background(), c, rec, nil)
	require.NoError(t, err)
	assert.True(t, attempted)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, *c.Hook, sender.urls[0])
	assert.Equal(t, c, sender.sent[0].Check)
	assert.Equal(t, history.StatusError, sender.sent[0].Status)
	assert.Equal(t, &details, sender.sent[0].Details)
}

func TestNotifierWithoutHook(t *testing.T) {
	sender := &fakeSender{}
	c := hooked()
	c.Hook = nil
	rec := history.New(c.ID, history.StatusError, nil, time.Now())

	attempted, err := (&Notifier{Sender: sender}).Notify(context.Background(), c, rec, nil)
	assert.NoError(t, err)
	assert.False(t, attempted)
	assert.Zero(t, sender.count())
}

func TestNotifierReturnsDeliveryError(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	c := hooked()
	rec := history.New(c.ID, history.StatusError, nil, time.Now())

	attempted, err := (&Notifier{Sender: sender}).Notify(context.Background(), c, rec, nil)
	assert.True(t, attempted)
	assert.Error(t, err)
	assert.Equal(t, 1, sender.count(), "no retry")
}
