package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

func loadSchema(name string) (string, error) {
	content, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return "", fmt.Errorf("read schema %s: %w", name, err)
	}
	return string(content), nil
}

// RunMigrations applies the idempotent Postgres schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	schema, err := loadSchema("postgres.sql")
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}

	logger.Info("schema applied", zap.String("driver", "postgres"))
	return nil
}

// applySQLiteSchema creates the SQLite tables when missing.
func applySQLiteSchema(ctx context.Context, db *sql.DB) error {
	schema, err := loadSchema("sqlite.sql")
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply sqlite schema: %w", err)
	}
	return nil
}
