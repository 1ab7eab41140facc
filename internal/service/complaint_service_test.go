package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
)

func TestCreateListDeleteComplaint(t *testing.T) {
	f := newFixture(t, "svc_complaints")
	ctx := context.Background()

	owner, err := f.auth.Register(ctx, registerInput("a1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	created, err := f.complaints.CreateComplaint(ctx, ComplaintCreateInput{
		Category:    "noise",
		Description: "loud",
		Location:    "hall",
		UserID:      owner.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.ComplaintStatusPending || created.AttachmentURL != nil {
		t.Fatalf("unexpected complaint: %+v", created)
	}
	if created.OwnerDisplayName() != "A" {
		t.Fatalf("owner = %q", created.OwnerDisplayName())
	}

	list, err := f.complaints.ListComplaints(ctx)
	if err != nil || len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list: %v %+v", err, list)
	}

	got, err := f.complaints.GetComplaint(ctx, created.ID)
	if err != nil || got.Category != "noise" {
		t.Fatalf("get: %v %+v", err, got)
	}

	if err := f.complaints.DeleteComplaint(ctx, created.ID, 0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = f.complaints.DeleteComplaint(ctx, created.ID, 0)
	assertCode(t, err, "NOT_FOUND", http.StatusNotFound)

	_, err = f.complaints.GetComplaint(ctx, created.ID)
	assertCode(t, err, "NOT_FOUND", http.StatusNotFound)

	// user_registered, complaint_created, complaint_deleted
	if len(f.publisher.payloads) != 3 {
		t.Fatalf("relayed %d events, want 3", len(f.publisher.payloads))
	}
}

func TestCreateComplaintUnknownUser(t *testing.T) {
	f := newFixture(t, "svc_complaints_unknown")
	ctx := context.Background()

	_, err := f.complaints.CreateComplaint(ctx, ComplaintCreateInput{
		Category:    "noise",
		Description: "loud",
		Location:    "hall",
		UserID:      42,
		Attachment:  &AttachmentInput{FileName: "x.txt", Body: strings.NewReader("x")},
	})
	assertCode(t, err, "VALIDATION_FAILED", http.StatusBadRequest)

	list, _ := f.complaints.ListComplaints(ctx)
	if len(list) != 0 {
		t.Fatalf("no row should be created, got %d", len(list))
	}
	if _, err := os.Stat(filepath.Join(f.uploadDir, "x.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("no blob should be written for an invalid user")
	}
}

func TestCreateComplaintWithAttachment(t *testing.T) {
	f := newFixture(t, "svc_complaints_attachment")
	ctx := context.Background()
	owner, err := f.auth.Register(ctx, registerInput("a1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	room := "B-12"
	created, err := f.complaints.CreateComplaint(ctx, ComplaintCreateInput{
		Category:    "water",
		Description: "leak",
		Location:    "block b",
		RoomNumber:  &room,
		UserID:      owner.ID,
		Attachment: &AttachmentInput{
			FileName:    "../my leak.png",
			ContentType: "image/png",
			Body:        strings.NewReader("png"),
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.AttachmentURL == nil || *created.AttachmentURL != "/uploads/my_leak.png" {
		t.Fatalf("attachment url = %v", created.AttachmentURL)
	}

	obj, err := f.complaints.OpenAttachment(ctx, "my_leak.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer obj.Body.Close()
	data, _ := io.ReadAll(obj.Body)
	if string(data) != "png" {
		t.Fatalf("content = %q", data)
	}

	_, err = f.complaints.OpenAttachment(ctx, "nope.png")
	assertCode(t, err, "NOT_FOUND", http.StatusNotFound)

	// Deleting the complaint leaves the blob in place.
	if err := f.complaints.DeleteComplaint(ctx, created.ID, 0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.uploadDir, "my_leak.png")); err != nil {
		t.Fatalf("blob should survive complaint deletion: %v", err)
	}
}

func TestCreateComplaintRejectsUnusableFilename(t *testing.T) {
	f := newFixture(t, "svc_complaints_badname")
	ctx := context.Background()
	owner, err := f.auth.Register(ctx, registerInput("a1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = f.complaints.CreateComplaint(ctx, ComplaintCreateInput{
		Category:    "noise",
		Description: "loud",
		Location:    "hall",
		UserID:      owner.ID,
		Attachment:  &AttachmentInput{FileName: "../", Body: strings.NewReader("x")},
	})
	assertCode(t, err, "VALIDATION_FAILED", http.StatusBadRequest)
}

func TestRelayFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t, "svc_relay_failure")
	f.publisher.err = errors.New("redis down")

	if _, err := f.auth.Register(context.Background(), registerInput("a1", "a@x.com")); err != nil {
		t.Fatalf("register should succeed despite relay failure: %v", err)
	}
}

func TestDeleteComplaintRecordsActor(t *testing.T) {
	f := newFixture(t, "svc_delete_actor")
	ctx := context.Background()

	owner, err := f.auth.Register(ctx, registerInput("a1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	created, err := f.complaints.CreateComplaint(ctx, ComplaintCreateInput{
		Category: "noise", Description: "loud", Location: "hall", UserID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.complaints.DeleteComplaint(ctx, created.ID, owner.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	last := f.publisher.payloads[len(f.publisher.payloads)-1]
	var event events.Event
	if err := json.Unmarshal(last, &event); err != nil {
		t.Fatalf("decode relayed event: %v", err)
	}
	if event.Type != events.EventComplaintDeleted || event.ComplaintID != created.ID || event.UserID != owner.ID {
		t.Fatalf("unexpected deletion event %+v", event)
	}
}
