package notify

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
)

// LogType is recorded as the notification type of messages that were only logged.
const LogType = "LOG"

// LogSender writes notifications to the log instead of a broker.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger.With("component", "LogSender")}
}

func (s *LogSender) Type() string {
	return LogType
}

func (s *LogSender) Send(ctx context.Context, msg notification.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	id := kernel.NewUUID().String()
	s.logger.InfoContext(ctx, "notification",
		"messageId", id,
		"topic", msg.Topic(),
		"title", msg.Title(),
		"body", msg.Body(),
		"data", msg.Data(),
	)
	return id, nil
}
