package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NordCoder/uptime-monitor/internal/domain"
)

var (
	ErrNotFound = domain.ErrNotFound
	ErrConflict = domain.ErrConflict
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// mapPgError turns constraint violations into package sentinels; anything
// else is returned unchanged.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return ErrNotFound
	case pgUniqueViolation, pgCheckViolation:
		return ErrConflict
	}
	return err
}
