package ports

import (
	"context"

	"orderflow/internal/core/domain/model/notification"
)

// NotificationSender delivers push notifications to topic subscribers.
type NotificationSender interface {
	// Type names the delivery channel, recorded as notificationType in the audit trail.
	Type() string

	// Send delivers the message and returns the channel's delivery token.
	Send(ctx context.Context, msg notification.Message) (string, error)
}
