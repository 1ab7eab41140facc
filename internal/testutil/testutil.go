package testutil

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/persistence"
)

// OpenInMemoryDB opens a named in-memory SQLite database with the schema
// applied. The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := persistence.NewSQLite(context.Background(), "file:"+name+"?mode=memory&cache=shared", zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(db.Close)
	return db.DB
}
