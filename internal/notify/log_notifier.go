package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier records spam escalations in the service log. Actual
// delivery to moderators (bot DMs, webhooks) belongs to the chat
// transport; this is the default when none is wired in.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new log notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifySpam logs the detection with sender and reputation context
func (n *LogNotifier) NotifySpam(ctx context.Context, senderID, text string, reputation int64) error {
	n.logger.Warn("Spam detected",
		zap.String("sender_id", senderID),
		zap.String("text", text),
		zap.Int64("spam_score", reputation))
	return nil
}
