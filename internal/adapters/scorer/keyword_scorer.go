package scorer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/core"
	"github.com/mikey/chat-spam-filter/internal/textutil"
)

// KeywordScorer is a pure in-process alternative to the Lua scorer
// for environments where embedding an interpreter is undesirable. It
// sums the scores of every stored rule whose keyword occurs in the
// message (case-insensitive, NFKC-folded). Duplicate rules count
// twice; that is intentional.
//
// The rule table is re-read from the store on every call, the same
// live-edit semantics the script scorer gets from re-reading its
// source file.
type KeywordScorer struct {
	store  core.RuleStore
	logger *zap.Logger
}

// NewKeywordScorer creates a scorer backed by the durable rule table
func NewKeywordScorer(store core.RuleStore, logger *zap.Logger) *KeywordScorer {
	return &KeywordScorer{
		store:  store,
		logger: logger,
	}
}

// Score sums the scores of all rules matching the message
func (s *KeywordScorer) Score(ctx context.Context, message string) (float64, error) {
	rules, err := s.store.LoadAllRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load rules: %w", err)
	}

	folded := textutil.Fold(message)

	var total float64
	for _, r := range rules {
		keyword := textutil.Fold(r.Keyword)
		if keyword == "" {
			continue
		}
		if strings.Contains(folded, keyword) {
			total += r.Score
		}
	}

	return total, nil
}
