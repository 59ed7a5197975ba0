package queue

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the delivery status of a queued notification
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
)

// Channel represents the requested delivery channel for a notification
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
	ChannelBoth  Channel = "both"
)

// Valid checks if the channel is one of the supported values
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelPush, ChannelBoth:
		return true
	}
	return false
}

// Notification represents one queued outbound notification.
//
// Attempts counts delivery attempts already made; LastAttemptAt is nil until
// the first attempt. ErrorMessage holds the last transport failure diagnostic
// and must never be included in any payload sent to the recipient.
type Notification struct {
	ID            uuid.UUID  `json:"id"`
	RecipientID   uuid.UUID  `json:"recipient_id"`
	Type          string     `json:"type"`
	Channel       Channel    `json:"channel"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Status        Status     `json:"status"`
	Attempts      int        `json:"attempts"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Statistics holds aggregate queue counters for operational reporting
type Statistics struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	Total      int `json:"total"`
}
