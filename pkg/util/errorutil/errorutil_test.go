package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("missing"), "VALIDATION_FAILED", http.StatusBadRequest},
		{"conflict stays 400", NewConflict("dup"), "CONFLICT", http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"not found", NewNotFound("Complaint"), "NOT_FOUND", http.StatusNotFound},
		{"wrapped domain error", fmt.Errorf("outer: %w", NewNotFound("User")), "NOT_FOUND", http.StatusNotFound},
		{"sql no rows", sql.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"anything else", errors.New("disk on fire"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToDomainError(tc.err)
			if got.Code != tc.code || got.HTTPStatus != tc.status {
				t.Fatalf("got %s/%d, want %s/%d", got.Code, got.HTTPStatus, tc.code, tc.status)
			}
		})
	}

	if ToDomainError(nil) != nil {
		t.Fatal("nil error should map to nil")
	}
}

func TestNotFoundMessage(t *testing.T) {
	if msg := NewNotFound("Complaint").Error(); msg != "Complaint not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError(cause)
	if !errors.Is(err, cause) {
		t.Fatal("internal error should unwrap to its cause")
	}
	if !IsCode(err, "INTERNAL_ERROR") {
		t.Fatal("expected INTERNAL_ERROR code")
	}
}
