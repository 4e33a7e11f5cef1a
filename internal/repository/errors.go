package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound means the identifier has no matching row.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a conditional write affected no rows because the
	// target changed or vanished since it was read.
	ErrConflict = errors.New("concurrent modification conflict")
)

const pgForeignKeyViolation = "23503"

// IsForeignKeyViolation reports whether err is a referential-integrity
// rejection from the store.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	// sqlite (used by the test suite) has no structured error codes
	return strings.Contains(err.Error(), "FOREIGN KEY constraint")
}
