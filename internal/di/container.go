package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/adapters/httpapi"
	"github.com/mikey/chat-spam-filter/internal/auth"
	"github.com/mikey/chat-spam-filter/internal/config"
	"github.com/mikey/chat-spam-filter/internal/core"
	"github.com/mikey/chat-spam-filter/internal/factory"
	"github.com/mikey/chat-spam-filter/internal/logging"
	"github.com/mikey/chat-spam-filter/internal/notify"
	"github.com/mikey/chat-spam-filter/internal/ports"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewScorerFactory); err != nil {
		return nil, err
	}

	// Register rule store
	if err := container.Provide(func(f *factory.StoreFactory) (core.RuleStore, error) {
		return f.CreateRuleStore()
	}); err != nil {
		return nil, err
	}

	// Register message scorer
	if err := container.Provide(func(f *factory.ScorerFactory, ruleStore core.RuleStore) (core.MessageScorer, error) {
		return f.CreateMessageScorer(ruleStore)
	}); err != nil {
		return nil, err
	}

	// Register spam threshold
	if err := container.Provide(func(cfg *config.Config) float64 {
		return cfg.GetFloat64("spam.threshold")
	}); err != nil {
		return nil, err
	}

	// Register scoring service
	if err := container.Provide(core.NewScoringService); err != nil {
		return nil, err
	}

	// Register authorizer
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) ports.Authorizer {
		return auth.NewTokenAuthorizer(cfg.GetServer().AdminToken, logger)
	}); err != nil {
		return nil, err
	}

	// Register notifier
	if err := container.Provide(func(logger *zap.Logger) ports.Notifier {
		return notify.NewLogNotifier(logger)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(
		service *core.ScoringService,
		authorizer ports.Authorizer,
		notifier ports.Notifier,
		logger *zap.Logger,
		cfg *config.Config,
	) ports.Server {
		return httpapi.NewServer(service, authorizer, notifier, logger, cfg.GetServer().ListenAddress)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
