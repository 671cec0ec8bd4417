package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/core"
)

// SQLiteStore is a SQLite implementation of the RuleStore interface.
//
// The connection handle is shared and guarded by a single mutex: every
// store operation holds the lock for its full duration, serializing
// all reads and writes. That is deliberate — it trades store-wide
// contention for straightforward correctness at chat-bot volume.
type SQLiteStore struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at the given
// path and creates the rules and senders tables if they do not exist.
// Schema creation is idempotent; existing rows are never dropped.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS rules (
			id INTEGER PRIMARY KEY,
			keyword TEXT NOT NULL,
			score REAL NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create rules table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS senders (
			user_id TEXT PRIMARY KEY,
			spam_score INTEGER DEFAULT 0,
			message_count INTEGER DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create senders table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// InsertRule durably appends a rule. No uniqueness constraint applies;
// repeated keywords produce additional rows.
func (s *SQLiteStore) InsertRule(ctx context.Context, keyword string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rules (keyword, score) VALUES (?, ?)
	`, keyword, score)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	return nil
}

// LoadAllRules returns every stored rule in insertion order
func (s *SQLiteStore) LoadAllRules(ctx context.Context) ([]core.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword, score FROM rules ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []core.Rule
	for rows.Next() {
		var r core.Rule
		if err := rows.Scan(&r.Keyword, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rules: %w", err)
	}

	return rules, nil
}

// UpsertSender increments the sender's counters in a single statement.
// The insert-or-update must be atomic so that concurrent updates for
// different senders never lose increments.
func (s *SQLiteStore) UpsertSender(ctx context.Context, senderID string, flagged bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	increment := 0
	if flagged {
		increment = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO senders (user_id, spam_score, message_count)
		VALUES (?, ?, 1)
		ON CONFLICT(user_id) DO UPDATE
		SET spam_score = spam_score + excluded.spam_score,
		    message_count = message_count + 1
	`, senderID, increment)
	if err != nil {
		return fmt.Errorf("failed to upsert sender: %w", err)
	}

	return nil
}

// GetSpamScore returns the sender's spam flag count, or 0 when the
// sender has no record
func (s *SQLiteStore) GetSpamScore(ctx context.Context, senderID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var score int64
	err := s.db.QueryRowContext(ctx, `
		SELECT spam_score FROM senders WHERE user_id = ?
	`, senderID).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query sender score: %w", err)
	}

	return score, nil
}

// GetReputation returns the sender's full counter pair, or zeroes when
// the sender has no record
func (s *SQLiteStore) GetReputation(ctx context.Context, senderID string) (core.Reputation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep := core.Reputation{SenderID: senderID}
	err := s.db.QueryRowContext(ctx, `
		SELECT spam_score, message_count FROM senders WHERE user_id = ?
	`, senderID).Scan(&rep.SpamFlags, &rep.MessageCount)
	if err == sql.ErrNoRows {
		return rep, nil
	}
	if err != nil {
		return rep, fmt.Errorf("failed to query sender reputation: %w", err)
	}

	return rep, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return nil
}
