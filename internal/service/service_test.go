package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/spec-kit/complaint-service/internal/blob"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/testutil"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

type recordingPublisher struct {
	mu       sync.Mutex
	channel  string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channel = channel
	p.payloads = append(p.payloads, payload)
	return p.err
}

type fixture struct {
	db         *sql.DB
	auth       *AuthService
	complaints *ComplaintService
	publisher  *recordingPublisher
	uploadDir  string
}

func newFixture(t *testing.T, name string) *fixture {
	t.Helper()
	db := testutil.OpenInMemoryDB(t, name)
	users := repository.NewSQLiteUserRepository(db)
	complaints := repository.NewSQLiteComplaintRepository(db)

	uploadDir := t.TempDir()
	blobs, err := blob.NewLocalStore(uploadDir, "uploads")
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	dispatcher := events.NewInMemoryDispatcher()
	publisher := &recordingPublisher{}
	NewNotificationService(NotificationDependencies{
		Dispatcher: dispatcher,
		Publisher:  publisher,
		Channel:    "complaints.events",
	}).RegisterHandlers()

	return &fixture{
		db: db,
		auth: NewAuthService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: 4}, AuthDependencies{
			UserRepo:   users,
			Dispatcher: dispatcher,
		}),
		complaints: NewComplaintService(ComplaintDependencies{
			ComplaintRepo: complaints,
			UserRepo:      users,
			Blobs:         blobs,
			Dispatcher:    dispatcher,
		}),
		publisher: publisher,
		uploadDir: uploadDir,
	}
}

func assertCode(t *testing.T, err error, code string, status int) {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError %s, got %v", code, err)
	}
	if de.Code != code || de.HTTPStatus != status {
		t.Fatalf("got %s/%d, want %s/%d", de.Code, de.HTTPStatus, code, status)
	}
}
