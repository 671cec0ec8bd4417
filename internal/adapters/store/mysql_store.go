package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/core"
)

// MySQLStore is a MySQL implementation of the RuleStore interface,
// for deployments that already run a shared database server. Locking
// discipline matches SQLiteStore: one mutex serializes every
// operation on the shared handle.
type MySQLStore struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL using the given DSN and creates the
// rules and senders tables if they do not exist
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS rules (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			keyword TEXT NOT NULL,
			score DOUBLE NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create rules table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS senders (
			user_id VARCHAR(255) PRIMARY KEY,
			spam_score BIGINT DEFAULT 0,
			message_count BIGINT DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create senders table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// InsertRule durably appends a rule
func (s *MySQLStore) InsertRule(ctx context.Context, keyword string, score float64) error {
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
func (s *MySQLStore) LoadAllRules(ctx context.Context) ([]core.Rule, error) {
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

// UpsertSender increments the sender's counters in a single atomic
// insert-or-update statement
func (s *MySQLStore) UpsertSender(ctx context.Context, senderID string, flagged bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	increment := 0
	if flagged {
		increment = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO senders (user_id, spam_score, message_count)
		VALUES (?, ?, 1)
		ON DUPLICATE KEY UPDATE
			spam_score = spam_score + ?,
			message_count = message_count + 1
	`, senderID, increment, increment)
	if err != nil {
		return fmt.Errorf("failed to upsert sender: %w", err)
	}

	return nil
}

// GetSpamScore returns the sender's spam flag count, or 0 when the
// sender has no record
func (s *MySQLStore) GetSpamScore(ctx context.Context, senderID string) (int64, error) {
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
func (s *MySQLStore) GetReputation(ctx context.Context, senderID string) (core.Reputation, error) {
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
func (s *MySQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close MySQL database: %w", err)
	}
	return nil
}
