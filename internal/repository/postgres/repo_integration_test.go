//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
	"github.com/NordCoder/uptime-monitor/internal/domain/outbox"
	"github.com/NordCoder/uptime-monitor/internal/repository/postgres/migrations"
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("IT_DB_DSN")
	if dsn == "" {
		t.Skip("IT_DB_DSN not set")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Reset(sqlDB, "."))
	require.NoError(t, goose.Up(sqlDB, "."))

	db, err := NewDB(context.Background(), Config{DSN: dsn, QueryTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func newCheck(method check.Method, body string) *check.Check {
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &check.Check{
		Frequency: check.Hourly,
		URL:       "https://example.com/health",
		Method:    method,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if body != "" {
		c.ExpectedBody = json.RawMessage(body)
	}
	return c
}

func TestCheckRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCheckRepo(setupDB(t))

	c := newCheck(check.MethodGET, `{"ok": true}`)
	require.NoError(t, repo.Create(ctx, c))
	require.NotEqual(t, uuid.Nil, c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, check.Hourly, got.Frequency)
	assert.JSONEq(t, `{"ok": true}`, string(got.ExpectedBody))
	assert.Nil(t, got.Hook)

	hook := "https://hooks.example.com/x"
	got.Hook = &hook
	got.ExpectedBody = nil
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.HasExpectedBody())
	require.NotNil(t, got.Hook)
	assert.Equal(t, hook, *got.Hook)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryRepo(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	checks := NewCheckRepo(db)
	hist := NewHistoryRepo(db)

	c := newCheck(check.MethodHEAD, "")
	require.NoError(t, checks.Create(ctx, c))

	latest, err := hist.Latest(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	base := time.Now().UTC().Truncate(time.Microsecond)
	details := "Endpoint returned error status code: '500 Internal Server Error'"
	require.NoError(t, hist.Append(ctx, history.New(c.ID, history.StatusOk, nil, base)))
	require.NoError(t, hist.Append(ctx, history.New(c.ID, history.StatusError, &details, base.Add(time.Second))))

	latest, err = hist.Latest(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, history.StatusError, latest.Status)
	require.NotNil(t, latest.Details)
	assert.Equal(t, details, *latest.Details)

	list, err := hist.ListByCheck(ctx, c.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, history.StatusError, list[0].Status)

	err = hist.Append(ctx, history.New(uuid.New(), history.StatusOk, nil, base))
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := hist.DeleteByCheck(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTransactorRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	tx := NewTransactor(db, zap.NewNop())
	checks := NewCheckRepo(db)
	hist := NewHistoryRepo(db)

	c := newCheck(check.MethodGET, "")
	require.NoError(t, checks.Create(ctx, c))

	err := tx.WithTx(ctx, func(ctx context.Context) error {
		if err := hist.Append(ctx, history.New(c.ID, history.StatusOk, nil, time.Now())); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	latest, err := hist.Latest(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestOutboxPickAndMark(t *testing.T) {
	ctx := context.Background()
	repo := NewOutboxRepo(setupDB(t))

	msg := outbox.Message{IdempotencyKey: "status:1", Kind: outbox.KindStatusChanged, Data: []byte(`{}`), Traceparent: "00-abc-def-01"}
	require.NoError(t, repo.Enqueue(ctx, msg))
	require.NoError(t, repo.Enqueue(ctx, msg))

	batch, err := repo.PickBatch(ctx, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, outbox.KindStatusChanged, batch[0].Kind)
	assert.Equal(t, "00-abc-def-01", batch[0].Traceparent)

	again, err := repo.PickBatch(ctx, 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, repo.MarkSuccess(ctx, []string{"status:1"}))
}
