package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
)

var _ check.Repo = (*CheckRepoImpl)(nil)

type CheckRepoImpl struct {
	db *DB
}

func NewCheckRepo(db *DB) *CheckRepoImpl { return &CheckRepoImpl{db: db} }

const checkColumns = `id, frequency, url, method, expected_body, hook, created_at, updated_at`

const (
	qCheckInsert = `
INSERT INTO checks (id, frequency, url, method, expected_body, hook, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + checkColumns + `;`

	qCheckGetByID = `SELECT ` + checkColumns + ` FROM checks WHERE id = $1;`

	qCheckGetForUpdate = `SELECT ` + checkColumns + ` FROM checks WHERE id = $1 FOR UPDATE;`

	qCheckList = `SELECT ` + checkColumns + ` FROM checks ORDER BY created_at, id;`

	qCheckUpdate = `
UPDATE checks
SET frequency = $2, url = $3, method = $4, expected_body = $5, hook = $6, updated_at = $7
WHERE id = $1;`

	qCheckDelete = `DELETE FROM checks WHERE id = $1;`
)

func scanCheck(row pgx.Row, c *check.Check) error {
	var (
		frequency, method string
		body              []byte
	)
	if err := row.Scan(
		&c.ID,
		&frequency,
		&c.URL,
		&method,
		&body,
		&c.Hook,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("scan check: %w", err)
	}
	c.Frequency = check.Frequency(frequency)
	c.Method = check.Method(method)
	if len(body) > 0 {
		c.ExpectedBody = json.RawMessage(body)
	} else {
		c.ExpectedBody = nil
	}
	return nil
}

// jsonbArg maps an absent or null body to SQL NULL.
func jsonbArg(c *check.Check) any {
	if !c.HasExpectedBody() {
		return nil
	}
	return string(c.ExpectedBody)
}

func (r *CheckRepoImpl) Create(ctx context.Context, c *check.Check) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := r.db.execQueryer(ctx).QueryRow(ctx, qCheckInsert,
		c.ID, string(c.Frequency), c.URL, string(c.Method), jsonbArg(c), c.Hook, c.CreatedAt, c.UpdatedAt,
	)
	if err := scanCheck(row, c); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *CheckRepoImpl) GetByID(ctx context.Context, id uuid.UUID) (*check.Check, error) {
	return r.get(ctx, qCheckGetByID, id)
}

func (r *CheckRepoImpl) GetForUpdate(ctx context.Context, id uuid.UUID) (*check.Check, error) {
	return r.get(ctx, qCheckGetForUpdate, id)
}

func (r *CheckRepoImpl) get(ctx context.Context, q string, id uuid.UUID) (*check.Check, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var c check.Check
	if err := scanCheck(r.db.execQueryer(ctx).QueryRow(ctx, q, id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CheckRepoImpl) List(ctx context.Context) ([]*check.Check, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qCheckList)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	out := make([]*check.Check, 0)
	for rows.Next() {
		var c check.Check
		if err := scanCheck(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *CheckRepoImpl) Update(ctx context.Context, c *check.Check) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	cmd, err := r.db.execQueryer(ctx).Exec(ctx, qCheckUpdate,
		c.ID, string(c.Frequency), c.URL, string(c.Method), jsonbArg(c), c.Hook, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update check: %w", mapPgError(err))
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CheckRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	cmd, err := r.db.execQueryer(ctx).Exec(ctx, qCheckDelete, id)
	if err != nil {
		return fmt.Errorf("delete check: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
