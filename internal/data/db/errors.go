package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that mean the statement lost a lock race and the
// whole transaction can be retried by the caller.
const (
	pgCodeLockNotAvailable     = "55P03"
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeCheckViolation       = "23514"
	pgCodeUniqueViolation      = "23505"
)

// IsLockContention reports whether err is a bounded-wait lock failure or a
// serialization abort. Nothing was committed; the caller may retry with
// backoff.
func IsLockContention(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgCodeLockNotAvailable, pgCodeSerializationFailure, pgCodeDeadlockDetected:
		return true
	}
	return false
}

// IsCheckViolation reports whether err is a CHECK constraint failure, e.g.
// a counter that would have gone negative.
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeCheckViolation
}

// IsUniqueViolation reports whether err is a unique index violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}
