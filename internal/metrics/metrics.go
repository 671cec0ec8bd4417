package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var MessagesEvaluated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spam_filter_messages_evaluated_total",
	Help: "Number of messages run through the scorer",
})

var SpamDetected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spam_filter_spam_detected_total",
	Help: "Number of messages classified as spam",
})

var ScorerFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spam_filter_scorer_failures_total",
	Help: "Number of scoring attempts that soft-failed to zero",
})

var RulesAdded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spam_filter_rules_added_total",
	Help: "Number of rules appended to the rule table",
})

var ReputationUpdateFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "spam_filter_reputation_update_failures_total",
	Help: "Number of reputation ledger writes that failed",
})
