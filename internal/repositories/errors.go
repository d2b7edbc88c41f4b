package repositories

import (
	"errors"

	"umd-backend/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code for constraint 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// notFound maps a missing-row scan to the client-facing error kind.
func notFound(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NotFound(msg)
	}
	return err
}
