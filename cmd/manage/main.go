package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/persistence"
	"github.com/spec-kit/complaint-service/internal/repository"
)

const usage = `usage: manage <command>

commands:
  show-users   print every registered user
`

func main() {
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Logger.Level = "warn"
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	switch flag.Arg(0) {
	case "show-users", "show_users":
		if err := runShowUsers(ctx, cfg, logger, os.Stdout); err != nil {
			logger.Error("show-users failed", zap.Error(err))
			_ = logger.Sync()
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}
}

// runShowUsers opens the configured store, prints its users and closes the
// store before returning.
func runShowUsers(ctx context.Context, cfg *config.Config, logger *zap.Logger, w io.Writer) error {
	users, closeStore, err := openUsers(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()
	return showUsers(ctx, w, users)
}

func openUsers(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.UserRepository, func(), error) {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewUserRepository(pg.PoolHandle()), pg.Close, nil
	}
	db, err := persistence.NewSQLite(ctx, cfg.Store.SQLitePath, logger)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSQLiteUserRepository(db.DB), db.Close, nil
}

func showUsers(ctx context.Context, w io.Writer, users repository.UserRepository) error {
	list, err := users.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No users found in the database.")
		return err
	}

	fmt.Fprintln(w, "--- Users in Database ---")
	for _, u := range list {
		fmt.Fprintf(w, "ID: %d, Name: %s, Username: %s, Email: %s, Role: %s\n", u.ID, u.Name, u.Username, u.Email, u.Role)
	}
	_, err = fmt.Fprintln(w, "-------------------------")
	return err
}
