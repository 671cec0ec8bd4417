package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/adapters/scorer"
	"github.com/mikey/chat-spam-filter/internal/config"
	"github.com/mikey/chat-spam-filter/internal/core"
)

// ScorerFactory creates message scorers based on configuration
type ScorerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewScorerFactory creates a new scorer factory
func NewScorerFactory(cfg *config.Config, logger *zap.Logger) *ScorerFactory {
	return &ScorerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMessageScorer creates a message scorer based on the
// configuration. The keyword scorer reads the rule table from the
// given store; the Lua scorer never touches it.
func (f *ScorerFactory) CreateMessageScorer(ruleStore core.RuleStore) (core.MessageScorer, error) {
	scorerCfg := f.cfg.GetScorer()

	switch scorerCfg.Type {
	case "lua":
		timeout, err := f.cfg.GetDuration("scorer.timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid scorer timeout: %w", err)
		}
		return scorer.NewLuaScorer(scorerCfg.ScriptPath, timeout, f.logger), nil
	case "keyword":
		return scorer.NewKeywordScorer(ruleStore, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported scorer type: %s", scorerCfg.Type)
	}
}
