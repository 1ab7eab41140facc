package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spec-kit/complaint-service/internal/blob"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const complaintResource = "Complaint"

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	blobs      blob.Store
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	UserRepo      repository.UserRepository
	Blobs         blob.Store
	Dispatcher    events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	Category    string
	Description string
	Location    string
	RoomNumber  *string
	UserID      int64
	Attachment  *AttachmentInput
}

// AttachmentInput is an uploaded file to store alongside the complaint.
type AttachmentInput struct {
	FileName    string
	ContentType string
	Body        io.ReadSeeker
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		users:      deps.UserRepo,
		blobs:      deps.Blobs,
		dispatcher: deps.Dispatcher,
	}
}

// CreateComplaint stores the optional attachment, then persists a pending
// complaint owned by in.UserID.
func (s *ComplaintService) CreateComplaint(ctx context.Context, in ComplaintCreateInput) (*domain.ComplaintWithOwner, error) {
	owner, err := s.users.GetByID(ctx, in.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewValidationError("Invalid user")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	var attachmentURL *string
	if in.Attachment != nil {
		ref, err := s.storeAttachment(ctx, in.Attachment)
		if err != nil {
			return nil, err
		}
		attachmentURL = &ref
	}

	complaint := &domain.Complaint{
		Category:      in.Category,
		Description:   in.Description,
		Location:      in.Location,
		RoomNumber:    in.RoomNumber,
		Status:        domain.ComplaintStatusPending,
		AttachmentURL: attachmentURL,
		UserID:        owner.ID,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventComplaintCreated,
		UserID:      owner.ID,
		ComplaintID: complaint.ID,
		Payload: events.ComplaintCreatedPayload{
			Category:      complaint.Category,
			Location:      complaint.Location,
			RoomNumber:    complaint.RoomNumber,
			AttachmentURL: complaint.AttachmentURL,
		},
	})

	return &domain.ComplaintWithOwner{Complaint: *complaint, OwnerName: &owner.Name}, nil
}

func (s *ComplaintService) storeAttachment(ctx context.Context, att *AttachmentInput) (string, error) {
	name := blob.SanitizeFilename(att.FileName)
	if name == "" {
		return "", apperrors.NewValidationError("Invalid file name")
	}
	ref, err := s.blobs.Put(ctx, name, att.Body, att.ContentType)
	if err != nil {
		return "", fmt.Errorf("store attachment: %w", err)
	}
	return ref, nil
}

// ListComplaints returns all complaints, most recent first.
func (s *ComplaintService) ListComplaints(ctx context.Context) ([]domain.ComplaintWithOwner, error) {
	return s.complaints.ListWithOwner(ctx)
}

// GetComplaint fetches a single complaint.
func (s *ComplaintService) GetComplaint(ctx context.Context, id int64) (*domain.ComplaintWithOwner, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound(complaintResource)
	}
	if err != nil {
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return complaint, nil
}

// DeleteComplaint removes a complaint. Its attachment, if any, is left in
// the blob store. actorID is the authenticated caller, or 0 when the route
// is open.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, id, actorID int64) error {
	if err := s.complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound(complaintResource)
		}
		return fmt.Errorf("delete complaint: %w", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventComplaintDeleted,
		UserID:      actorID,
		ComplaintID: id,
	})
	return nil
}

// OpenAttachment opens a stored attachment by its sanitized name.
func (s *ComplaintService) OpenAttachment(ctx context.Context, name string) (*blob.Object, error) {
	obj, err := s.blobs.Open(ctx, name)
	if errors.Is(err, blob.ErrNotFound) || errors.Is(err, blob.ErrInvalidName) {
		return nil, apperrors.NewNotFound("Attachment")
	}
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	return obj, nil
}
