package store

import (
	"context"
	"sync"

	"github.com/mikey/chat-spam-filter/internal/core"
)

// MemoryStore is an in-memory implementation of the RuleStore
// interface. Nothing survives a restart; it exists for development
// and tests, where a durable backing store is noise.
type MemoryStore struct {
	mu      sync.Mutex
	rules   []core.Rule
	senders map[string]*core.Reputation
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		senders: make(map[string]*core.Reputation),
	}
}

// InsertRule appends a rule
func (s *MemoryStore) InsertRule(ctx context.Context, keyword string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = append(s.rules, core.Rule{Keyword: keyword, Score: score})
	return nil
}

// LoadAllRules returns every stored rule in insertion order
func (s *MemoryStore) LoadAllRules(ctx context.Context) ([]core.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules := make([]core.Rule, len(s.rules))
	copy(rules, s.rules)
	return rules, nil
}

// UpsertSender increments the sender's counters, creating the record
// if absent
func (s *MemoryStore) UpsertSender(ctx context.Context, senderID string, flagged bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep, ok := s.senders[senderID]
	if !ok {
		rep = &core.Reputation{SenderID: senderID}
		s.senders[senderID] = rep
	}
	rep.MessageCount++
	if flagged {
		rep.SpamFlags++
	}
	return nil
}

// GetSpamScore returns the sender's spam flag count, or 0 when the
// sender has no record
func (s *MemoryStore) GetSpamScore(ctx context.Context, senderID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep, ok := s.senders[senderID]
	if !ok {
		return 0, nil
	}
	return rep.SpamFlags, nil
}

// GetReputation returns the sender's full counter pair, or zeroes when
// the sender has no record
func (s *MemoryStore) GetReputation(ctx context.Context, senderID string) (core.Reputation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep, ok := s.senders[senderID]
	if !ok {
		return core.Reputation{SenderID: senderID}, nil
	}
	return *rep, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
