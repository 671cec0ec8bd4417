package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/metrics"
)

// ScoringService is the core service for spam scoring and sender
// reputation tracking. It is the only component callers interact with.
type ScoringService struct {
	store     RuleStore
	scorer    MessageScorer
	cache     *RuleCache
	logger    *zap.Logger
	threshold float64
}

// NewScoringService creates a new scoring service. The rule cache is
// populated from the store up front so that a rule added through
// AddRule is always a strict append on top of the durable state.
func NewScoringService(
	store RuleStore,
	scorer MessageScorer,
	logger *zap.Logger,
	threshold float64,
) (*ScoringService, error) {
	rules, err := store.LoadAllRules(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	logger.Info("Loaded rules into cache", zap.Int("rule_count", len(rules)))

	return &ScoringService{
		store:     store,
		scorer:    scorer,
		cache:     NewRuleCache(rules),
		logger:    logger,
		threshold: threshold,
	}, nil
}

// Evaluate scores a message and classifies it against the spam
// threshold. Scorer failures are logged and coerced to a zero score so
// that a broken scoring script never blocks message processing. The
// threshold is inclusive: a score exactly at the threshold is spam.
func (s *ScoringService) Evaluate(ctx context.Context, message string) Evaluation {
	score, err := s.scorer.Score(ctx, message)
	if err != nil {
		s.logger.Error("Failed to score message, defaulting to 0.0", zap.Error(err))
		metrics.ScorerFailures.Inc()
		score = 0.0
	}

	isSpam := score >= s.threshold
	metrics.MessagesEvaluated.Inc()
	if isSpam {
		metrics.SpamDetected.Inc()
	}

	s.logger.Debug("Evaluated message",
		zap.Float64("score", score),
		zap.Bool("is_spam", isSpam))

	return Evaluation{Score: score, IsSpam: isSpam}
}

// RecordOutcome updates the sender's reputation counters for one
// evaluated message. The message count always increments; the spam
// flag count increments only when isSpam is true and is never
// decremented.
func (s *ScoringService) RecordOutcome(ctx context.Context, senderID string, isSpam bool) error {
	if err := s.store.UpsertSender(ctx, senderID, isSpam); err != nil {
		metrics.ReputationUpdateFailures.Inc()
		return fmt.Errorf("failed to record outcome for sender %s: %w", senderID, err)
	}
	return nil
}

// AddRule durably inserts a rule and then appends it to the in-memory
// cache. The cache is only touched once the insert has succeeded, so a
// write failure leaves the cache in lockstep with the store.
func (s *ScoringService) AddRule(ctx context.Context, keyword string, score float64) error {
	if err := s.store.InsertRule(ctx, keyword, score); err != nil {
		return fmt.Errorf("failed to add rule: %w", err)
	}

	s.cache.Append(Rule{Keyword: keyword, Score: score})
	metrics.RulesAdded.Inc()

	s.logger.Info("Added rule",
		zap.String("keyword", keyword),
		zap.Float64("score", score))

	return nil
}

// GetReputation returns the sender's accumulated spam flag count.
// Store read failures are logged and reported as 0; a sender the
// ledger cannot see is treated the same as a clean one.
func (s *ScoringService) GetReputation(ctx context.Context, senderID string) int64 {
	score, err := s.store.GetSpamScore(ctx, senderID)
	if err != nil {
		s.logger.Error("Failed to read sender reputation, defaulting to 0",
			zap.Error(err),
			zap.String("sender_id", senderID))
		return 0
	}
	return score
}

// Rules returns a copy of the cached rule list
func (s *ScoringService) Rules() []Rule {
	return s.cache.Snapshot()
}

// Threshold returns the configured spam threshold
func (s *ScoringService) Threshold() float64 {
	return s.threshold
}
