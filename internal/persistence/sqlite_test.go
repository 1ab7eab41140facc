package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestWithForeignKeys(t *testing.T) {
	cases := []struct{ in, want string }{
		{"instance/database.db", "file:instance/database.db?_foreign_keys=on"},
		{"file:x?mode=memory&cache=shared", "file:x?mode=memory&cache=shared&_foreign_keys=on"},
		{"file:x?_foreign_keys=off", "file:x?_foreign_keys=off"},
		{"file:y?mode=memory&_fk=1", "file:y?mode=memory&_fk=1"},
	}
	for _, tc := range cases {
		if got := withForeignKeys(tc.in); got != tc.want {
			t.Errorf("withForeignKeys(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewSQLiteCreatesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "database.db")

	db, err := NewSQLite(ctx, path, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"users", "complaints"} {
		var name string
		err := db.DB.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	var fk int
	if err := db.DB.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk); err != nil || fk != 1 {
		t.Fatalf("foreign keys not enabled: fk=%d err=%v", fk, err)
	}

	// Re-opening must not fail on existing tables.
	db.Close()
	again, err := NewSQLite(ctx, path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again.Close()
}

func TestNewSQLiteRejectsEmptyPath(t *testing.T) {
	if _, err := NewSQLite(context.Background(), "", zap.NewNop()); err == nil {
		t.Fatal("expected error")
	}
}
