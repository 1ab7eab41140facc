package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslatePgError(t *testing.T) {
	if !errors.Is(translatePgError(pgx.ErrNoRows), ErrNotFound) {
		t.Fatal("no rows should become ErrNotFound")
	}

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	field, ok := IsUniqueViolation(translatePgError(fmt.Errorf("insert: %w", dup)))
	if !ok || field != "email" {
		t.Fatalf("field=%q ok=%v", field, ok)
	}

	other := errors.New("connection reset")
	if translatePgError(other) != other {
		t.Fatal("unrelated errors pass through")
	}
	if translatePgError(nil) != nil {
		t.Fatal("nil stays nil")
	}
}

func TestFieldFromConstraint(t *testing.T) {
	cases := []struct{ in, want string }{
		{"users_username_key", "username"},
		{"users_email_key", "email"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := fieldFromConstraint(tc.in); got != tc.want {
			t.Errorf("fieldFromConstraint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFieldFromSQLiteMessage(t *testing.T) {
	if got := fieldFromSQLiteMessage("UNIQUE constraint failed: users.username"); got != "username" {
		t.Fatalf("got %q", got)
	}
	if got := fieldFromSQLiteMessage("no dot"); got != "" {
		t.Fatalf("got %q", got)
	}
}
