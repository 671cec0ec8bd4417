package core

// Rule represents a single keyword scoring rule
//
// Rules are append-only: once created they are never edited or removed,
// and duplicate keywords are allowed.
type Rule struct {
	Keyword string
	Score   float64
}

// Reputation represents the durable per-sender counters
type Reputation struct {
	SenderID     string
	SpamFlags    int64
	MessageCount int64
}

// Evaluation represents the result of scoring a single message
type Evaluation struct {
	Score  float64
	IsSpam bool
}
