package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// CreateComplaintForm is the multipart form for POST /api/complaints. The
// optional file part named "file" is read separately.
type CreateComplaintForm struct {
	Category    string `form:"category"`
	Description string `form:"description"`
	Location    string `form:"location"`
	UserID      string `form:"userId"`
	RoomNumber  string `form:"roomNumber"`
}

// Validate checks required fields and returns the parsed owner id.
func (f CreateComplaintForm) Validate() (int64, error) {
	if anyBlank(f.Category, f.Description, f.Location, f.UserID) {
		return 0, apperrors.NewValidationError("Missing required fields")
	}
	userID, err := strconv.ParseInt(strings.TrimSpace(f.UserID), 10, 64)
	if err != nil || userID <= 0 {
		return 0, apperrors.NewValidationError("Invalid user")
	}
	return userID, nil
}

// RoomNumberPtr returns nil when no room number was supplied.
func (f CreateComplaintForm) RoomNumberPtr() *string {
	if strings.TrimSpace(f.RoomNumber) == "" {
		return nil
	}
	room := f.RoomNumber
	return &room
}

// ComplaintResponse is the serialized complaint.
type ComplaintResponse struct {
	ID            int64                  `json:"id"`
	Category      string                 `json:"category"`
	Description   string                 `json:"description"`
	Location      string                 `json:"location"`
	RoomNumber    *string                `json:"roomNumber"`
	Status        domain.ComplaintStatus `json:"status"`
	AttachmentURL *string                `json:"attachmentUrl"`
	CreatedAt     time.Time              `json:"createdAt"`
	User          string                 `json:"user"`
}

// NewComplaintResponse maps a complaint and its owner into the response shape.
func NewComplaintResponse(c *domain.ComplaintWithOwner) ComplaintResponse {
	return ComplaintResponse{
		ID:            c.ID,
		Category:      c.Category,
		Description:   c.Description,
		Location:      c.Location,
		RoomNumber:    c.RoomNumber,
		Status:        c.Status,
		AttachmentURL: c.AttachmentURL,
		CreatedAt:     c.CreatedAt.UTC(),
		User:          c.OwnerDisplayName(),
	}
}
