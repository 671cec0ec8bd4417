package ports

import (
	"context"
)

// Notifier defines the interface for escalating a spam detection to
// moderators. Delivery failures must never block message processing.
type Notifier interface {
	// NotifySpam reports a message classified as spam together with
	// the sender's accumulated reputation
	NotifySpam(ctx context.Context, senderID, text string, reputation int64) error
}
