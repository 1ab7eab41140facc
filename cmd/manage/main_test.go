package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/testutil"
)

func TestShowUsersEmpty(t *testing.T) {
	users := repository.NewSQLiteUserRepository(testutil.OpenInMemoryDB(t, "manage_empty"))

	var out bytes.Buffer
	if err := showUsers(context.Background(), &out, users); err != nil {
		t.Fatalf("show users: %v", err)
	}
	if got := out.String(); got != "No users found in the database.\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestShowUsersListsEveryUser(t *testing.T) {
	ctx := context.Background()
	users := repository.NewSQLiteUserRepository(testutil.OpenInMemoryDB(t, "manage_list"))
	for _, u := range []domain.User{
		{Name: "Ann", Email: "a@x.io", Username: "ann", PasswordHash: "h", Role: "student"},
		{Name: "Bob", Email: "b@x.io", Username: "bob", PasswordHash: "h", Role: "staff"},
	} {
		u := u
		if err := users.Create(ctx, &u); err != nil {
			t.Fatalf("create %s: %v", u.Username, err)
		}
	}

	var out bytes.Buffer
	if err := showUsers(ctx, &out, users); err != nil {
		t.Fatalf("show users: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"--- Users in Database ---",
		"Name: Ann, Username: ann, Email: a@x.io, Role: student",
		"Name: Bob, Username: bob, Email: b@x.io, Role: staff",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunShowUsersAgainstFileStore(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "instance", "database.db"),
	}}

	var out bytes.Buffer
	if err := runShowUsers(context.Background(), cfg, zap.NewNop(), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "No users found") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunShowUsersReportsStoreErrors(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverPostgres}}

	if err := runShowUsers(context.Background(), cfg, zap.NewNop(), io.Discard); err == nil {
		t.Fatal("expected an error for a postgres store without DSN")
	}
}
