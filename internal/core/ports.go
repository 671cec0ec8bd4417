package core

import (
	"context"
)

// MessageScorer defines the interface for computing a spam score for
// raw message text
type MessageScorer interface {
	// Score computes a spam likelihood score for the message
	Score(ctx context.Context, message string) (float64, error)
}

// RuleStore defines the interface for the durable layer backing the
// rule table and the sender reputation ledger
type RuleStore interface {
	// InsertRule durably appends a rule; duplicates are never collapsed
	InsertRule(ctx context.Context, keyword string, score float64) error

	// LoadAllRules returns every stored rule, used once at startup to
	// populate the in-memory cache
	LoadAllRules(ctx context.Context) ([]Rule, error)

	// UpsertSender atomically increments the sender's message count,
	// and its spam flag count when flagged is true, creating the row
	// if absent
	UpsertSender(ctx context.Context, senderID string, flagged bool) error

	// GetSpamScore returns the sender's spam flag count, or 0 when the
	// sender has no record
	GetSpamScore(ctx context.Context, senderID string) (int64, error)

	// Close releases the backing store
	Close() error
}
