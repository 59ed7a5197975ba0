package prefs

import (
	"time"

	"github.com/google/uuid"
)

// Preference holds a recipient's channel opt-in state for one notification
// type. Absence of a record means both channels are enabled (opt-out model).
type Preference struct {
	RecipientID  uuid.UUID `json:"recipient_id"`
	Type         string    `json:"type"`
	EmailEnabled bool      `json:"email_enabled"`
	PushEnabled  bool      `json:"push_enabled"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChannelPair is a compact email/push toggle pair used by bulk operations
type ChannelPair struct {
	EmailEnabled bool `json:"email_enabled"`
	PushEnabled  bool `json:"push_enabled"`
}

// Template identifies an active notification template known to the catalog
type Template struct {
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
}
