package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventComplaintCreated EventType = "complaint_created"
	EventComplaintDeleted EventType = "complaint_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	UserID      int64       `json:"user_id,omitempty"`
	ComplaintID int64       `json:"complaint_id,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Category      string  `json:"category"`
	Location      string  `json:"location"`
	RoomNumber    *string `json:"room_number,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
}
