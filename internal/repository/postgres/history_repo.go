package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

var _ history.Repo = (*HistoryRepoImpl)(nil)

type HistoryRepoImpl struct{ db *DB }

func NewHistoryRepo(db *DB) *HistoryRepoImpl { return &HistoryRepoImpl{db: db} }

const (
	qHistoryInsert = `
INSERT INTO checks_history (id, check_id, status, details, created_at)
VALUES ($1, $2, $3, $4, $5);`

	// id breaks ties between records written in the same microsecond.
	qHistoryLatest = `
SELECT id, check_id, status, details, created_at
FROM checks_history
WHERE check_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1;`

	qHistoryByCheck = `
SELECT id, check_id, status, details, created_at
FROM checks_history
WHERE check_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2;`

	qHistoryDelete = `DELETE FROM checks_history WHERE check_id = $1;`
)

func scanHistory(row pgx.Row, h *history.History) error {
	var status string
	if err := row.Scan(&h.ID, &h.CheckID, &status, &h.Details, &h.CreatedAt); err != nil {
		return err
	}
	h.Status = history.Status(status)
	return nil
}

func (r *HistoryRepoImpl) Append(ctx context.Context, h *history.History) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	_, err := r.db.execQueryer(ctx).Exec(ctx, qHistoryInsert,
		h.ID, h.CheckID, string(h.Status), h.Details, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", mapPgError(err))
	}
	return nil
}

func (r *HistoryRepoImpl) Latest(ctx context.Context, checkID uuid.UUID) (*history.History, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var h history.History
	if err := scanHistory(r.db.execQueryer(ctx).QueryRow(ctx, qHistoryLatest, checkID), &h); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest history: %w", err)
	}
	return &h, nil
}

func (r *HistoryRepoImpl) ListByCheck(ctx context.Context, checkID uuid.UUID, limit int) ([]*history.History, error) {
	if limit <= 0 {
		limit = 50
	}
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qHistoryByCheck, checkID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := make([]*history.History, 0)
	for rows.Next() {
		var h history.History
		if err := scanHistory(rows, &h); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *HistoryRepoImpl) DeleteByCheck(ctx context.Context, checkID uuid.UUID) (int64, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	cmd, err := r.db.execQueryer(ctx).Exec(ctx, qHistoryDelete, checkID)
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return cmd.RowsAffected(), nil
}
