package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/config"
	"github.com/mikey/chat-spam-filter/internal/core"
	"github.com/mikey/chat-spam-filter/internal/factory"
	"github.com/mikey/chat-spam-filter/internal/logging"
)

var (
	// Scorer flags
	scorerType = flag.String("scorer", "lua", "Message scorer (lua, keyword)")
	scriptPath = flag.String("script", "rules.lua", "Path to the Lua scoring script")
	timeout    = flag.String("timeout", "5s", "Script execution deadline")

	// Store flags
	storeType  = flag.String("store", "sqlite", "Rule store (sqlite, mysql, memory)")
	sqlitePath = flag.String("sqlite-path", "spam.db", "Path to the SQLite database")
	mysqlDSN   = flag.String("mysql-dsn", "", "MySQL DSN (store=mysql)")

	// Spam detection flags
	spamThreshold = flag.Float64("threshold", 5.0, "Inclusive score threshold for spam classification")

	// Input flags
	message  = flag.String("message", "", "Message text (use stdin if not specified)")
	senderID = flag.String("sender", "", "Sender ID; when set, the outcome is recorded against the sender")
	verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog  = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := createConfigFromFlags()

	// Create the store
	storeFactory := factory.NewStoreFactory(cfg, logger)
	ruleStore, err := storeFactory.CreateRuleStore()
	if err != nil {
		logger.Fatal("Failed to create rule store", zap.Error(err))
	}
	defer ruleStore.Close()

	// Create the scorer
	scorerFactory := factory.NewScorerFactory(cfg, logger)
	msgScorer, err := scorerFactory.CreateMessageScorer(ruleStore)
	if err != nil {
		logger.Fatal("Failed to create scorer", zap.Error(err))
	}

	// Create the scoring service
	service, err := core.NewScoringService(ruleStore, msgScorer, logger, cfg.GetFloat64("spam.threshold"))
	if err != nil {
		logger.Fatal("Failed to create scoring service", zap.Error(err))
	}

	// Read the message from the flag or stdin
	text := *message
	if text == "" {
		logger.Info("Reading message from stdin")
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			logger.Fatal("Failed to read message", zap.Error(err))
		}
		text = string(data)
	}

	ctx := context.Background()

	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("Scorer: %s\n", cfg.GetString("scorer.type"))
	fmt.Printf("Spam threshold: %.2f\n", service.Threshold())

	startTime := time.Now()
	eval := service.Evaluate(ctx, text)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Is spam: %t\n", eval.IsSpam)
	fmt.Printf("Spam score: %.4f\n", eval.Score)
	fmt.Printf("Processing time: %v\n", duration)

	if *senderID != "" {
		if err := service.RecordOutcome(ctx, *senderID, eval.IsSpam); err != nil {
			logger.Error("Failed to record outcome", zap.Error(err))
		}
		fmt.Printf("Sender: %s\n", *senderID)
		fmt.Printf("Sender spam flags: %d\n", service.GetReputation(ctx, *senderID))
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("scorer.type", *scorerType)
	v.Set("scorer.script_path", *scriptPath)
	v.Set("scorer.timeout", *timeout)

	v.Set("store.type", *storeType)
	v.Set("store.sqlite_path", *sqlitePath)
	if *mysqlDSN != "" {
		v.Set("store.mysql_dsn", *mysqlDSN)
	}

	v.Set("spam.threshold", *spamThreshold)

	return config.NewFromViper(v)
}
