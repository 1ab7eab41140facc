package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup or delete matches no row.
var ErrNotFound = errors.New("record not found")

// UniqueViolationError reports that an insert collided with a unique column.
type UniqueViolationError struct {
	Field string
	Err   error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint violated on %s", e.Field)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// IsUniqueViolation reports whether err is a unique violation, returning the
// offending field.
func IsUniqueViolation(err error) (string, bool) {
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return uv.Field, true
	}
	return "", false
}

const pgUniqueViolation = "23505"

// translatePgError maps pgx errors onto the repository error set.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &UniqueViolationError{Field: fieldFromConstraint(pgErr.ConstraintName), Err: err}
	}
	return err
}

// fieldFromConstraint turns Postgres' default "users_email_key" into "email".
func fieldFromConstraint(name string) string {
	name = strings.TrimSuffix(name, "_key")
	if idx := strings.Index(name, "_"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// translateSQLiteError maps go-sqlite3 errors onto the repository error set.
func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return &UniqueViolationError{Field: fieldFromSQLiteMessage(sqliteErr.Error()), Err: err}
	}
	return err
}

// fieldFromSQLiteMessage extracts "email" from
// "UNIQUE constraint failed: users.email".
func fieldFromSQLiteMessage(msg string) string {
	idx := strings.LastIndex(msg, ".")
	if idx < 0 || idx == len(msg)-1 {
		return ""
	}
	return msg[idx+1:]
}
