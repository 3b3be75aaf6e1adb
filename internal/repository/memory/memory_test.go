package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordCoder/uptime-monitor/internal/domain"
	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

func TestStoreChecks(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := &check.Check{Frequency: check.Hourly, URL: "https://a.example", Method: check.MethodGET}
	b := &check.Check{Frequency: check.Daily, URL: "https://b.example", Method: check.MethodHEAD}
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))
	require.NotEqual(t, uuid.Nil, a.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)

	got, err := s.GetByID(ctx, a.ID)
	require.NoError(t, err)
	got.URL = "https://changed.example"
	again, _ := s.GetByID(ctx, a.ID)
	assert.Equal(t, "https://a.example", again.URL, "returned checks must be copies")

	require.NoError(t, s.Update(ctx, got))
	again, _ = s.GetByID(ctx, a.ID)
	assert.Equal(t, "https://changed.example", again.URL)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Delete(ctx, a.ID), domain.ErrNotFound)
	_, err = s.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreHistory(t *testing.T) {
	ctx := context.Background()
	s := New()
	c := &check.Check{Frequency: check.Hourly, URL: "https://a.example", Method: check.MethodGET}
	require.NoError(t, s.Create(ctx, c))

	latest, err := s.Latest(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := history.New(c.ID, history.StatusOk, nil, at)
	second := history.New(c.ID, history.StatusError, nil, at)
	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))

	latest, err = s.Latest(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID, "equal timestamps resolve to the later append")

	rows, err := s.ListByCheck(ctx, c.ID, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)

	assert.ErrorIs(t, s.Append(ctx, history.New(uuid.New(), history.StatusOk, nil, at)), domain.ErrNotFound)

	require.NoError(t, s.Delete(ctx, c.ID))
	rows, err = s.ListByCheck(ctx, c.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
