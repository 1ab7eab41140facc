package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/complaint-service/internal/api/http"
	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/blob"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/persistence"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/worker"
)

const uploadsPrefix = "uploads"

type stores struct {
	users      repository.UserRepository
	complaints repository.ComplaintRepository
	pinger     handlers.Pinger
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.close()

	blobs, err := openBlobStore(cfg.Blob)
	if err != nil {
		logger.Fatal("failed to init blob store", zap.String("provider", cfg.Blob.Provider), zap.Error(err))
	}

	dependencies := map[string]handlers.Pinger{"database": st.pinger}

	var publisher service.EventPublisher
	if cfg.Redis.Enabled {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		publisher = redis
		dependencies["redis"] = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
		Publisher:  publisher,
		Channel:    cfg.Redis.EventsChannel,
	})
	worker.StartNotificationWorker(notificationService, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   st.users,
		Dispatcher: dispatcher,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: st.complaints,
		UserRepo:      st.users,
		Blobs:         blobs,
		Dispatcher:    dispatcher,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), st.users)

	app := httptransport.NewServer(
		httptransport.ServerConfig{
			AppName:   cfg.App.Name,
			BodyLimit: cfg.App.BodyLimit(),
		},
		httptransport.MiddlewareConfig{
			Logger:           logger,
			Metrics:          metrics,
			RequestTimeout:   cfg.App.RequestTimeout(),
			CORSAllowOrigins: cfg.App.CORSAllowOrigins,
		},
		httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
			Users:          handlers.NewUsersHandler(authService),
			Complaints:     handlers.NewComplaintsHandler(complaintService),
			Metrics:        metrics,
			AuthMiddleware: authMiddleware,
			RequireToken:   cfg.Auth.RequireToken,
		},
	)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		pool := pg.PoolHandle()
		return &stores{
			users:      repository.NewUserRepository(pool),
			complaints: repository.NewComplaintRepository(pool),
			pinger:     pg,
			close:      pg.Close,
		}, nil
	}

	db, err := persistence.NewSQLite(ctx, cfg.Store.SQLitePath, logger)
	if err != nil {
		return nil, err
	}
	return &stores{
		users:      repository.NewSQLiteUserRepository(db.DB),
		complaints: repository.NewSQLiteComplaintRepository(db.DB),
		pinger:     db,
		close:      db.Close,
	}, nil
}

func openBlobStore(cfg config.BlobConfig) (blob.Store, error) {
	if cfg.Provider == config.BlobProviderS3 {
		return blob.NewS3Store(cfg, uploadsPrefix)
	}
	return blob.NewLocalStore(cfg.UploadDir, uploadsPrefix)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
