package models

import (
	"strings"
	"time"
)

// Booking statuses. A booking is created with a caller-supplied status and
// moves between these values through administrator review. Cancellation is
// not stored on live rows: a cancelled booking is migrated to the archive.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Booking is a room reservation request for a single date and a same-day
// time range. Owner name/role and room location are snapshots taken at
// creation time and are not kept in sync with later changes.
type Booking struct {
	ID            int64     `json:"id"`
	Room          string    `json:"room"`
	RoomID        int64     `json:"room_id"`
	BookingDate   string    `json:"booking_date"` // "2006-01-02"
	StartTime     string    `json:"start_time"`   // "15:04"
	EndTime       string    `json:"end_time"`     // "15:04"
	EventType     string    `json:"event_type"`
	EventName     string    `json:"event_name"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Location      string    `json:"location"`
	PermitPicture string    `json:"permit_picture,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CSSClass derives the calendar display class from the event type,
// e.g. "Team Meeting" -> "event-team-meeting".
func (b Booking) CSSClass() string {
	return "event-" + strings.ReplaceAll(strings.ToLower(b.EventType), " ", "-")
}

// ArchivedBooking is a booking moved to the cancellation archive. It is a
// field-for-field copy of the live record at the moment of cancellation or
// administrative deletion, immutable thereafter.
type ArchivedBooking struct {
	ID            int64     `json:"id"`
	Room          string    `json:"room"`
	RoomID        int64     `json:"room_id"`
	BookingDate   string    `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	EventType     string    `json:"event_type"`
	EventName     string    `json:"event_name"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Location      string    `json:"location"`
	PermitPicture string    `json:"permit_picture,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
