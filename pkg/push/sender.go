package push

import (
	"context"
	"log/slog"
)

// Message is the payload handed to the push transport
type Message struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Type  string `json:"type"`
}

// Sender represents the external push transport (FCM, APNs, web push).
// Implementations return ErrInvalidToken when the transport reports the
// device token as stale so the adapter can queue it for cleanup.
type Sender interface {
	SendPush(ctx context.Context, msg Message) error
}

// DevSender implements Sender for local development: pushes are logged,
// never transmitted.
type DevSender struct {
	logger *slog.Logger
}

// NewDevSender creates a logging push sender
func NewDevSender(logger *slog.Logger) *DevSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevSender{logger: logger}
}

// SendPush implements Sender
func (d *DevSender) SendPush(ctx context.Context, msg Message) error {
	d.logger.LogAttrs(ctx, slog.LevelInfo, "push notification (dev mode, not sent)",
		slog.String("token", msg.Token),
		slog.String("title", msg.Title),
		slog.String("type", msg.Type),
	)
	return nil
}
