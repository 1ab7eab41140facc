package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

// ComplaintStatusPending is the state every complaint is created in.
const ComplaintStatusPending ComplaintStatus = "pending"

// UnknownOwner is shown in place of the owner's name when the owning user is missing.
const UnknownOwner = "Unknown"

// Complaint is a user-submitted issue report.
type Complaint struct {
	ID            int64
	Category      string
	Description   string
	Location      string
	RoomNumber    *string
	Status        ComplaintStatus
	AttachmentURL *string
	CreatedAt     time.Time
	UserID        int64
}

// ComplaintWithOwner pairs a complaint with its owner's display name.
type ComplaintWithOwner struct {
	Complaint
	OwnerName *string
}

// OwnerDisplayName returns the owner's name or UnknownOwner.
func (c ComplaintWithOwner) OwnerDisplayName() string {
	if c.OwnerName == nil || *c.OwnerName == "" {
		return UnknownOwner
	}
	return *c.OwnerName
}
