package core

import (
	"sync"
)

// RuleCache is an in-memory, append-only mirror of the durable rule
// table. It is populated once at service construction and appended to
// after every successful durable insert; it is never the source of
// truth on its own.
type RuleCache struct {
	mu    sync.Mutex
	rules []Rule
}

// NewRuleCache creates a cache pre-populated with the given rules
func NewRuleCache(rules []Rule) *RuleCache {
	c := &RuleCache{
		rules: make([]Rule, len(rules)),
	}
	copy(c.rules, rules)
	return c
}

// Append adds a rule to the cache. Callers must only append after the
// corresponding durable insert has succeeded.
func (c *RuleCache) Append(rule Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rules = append(c.rules, rule)
}

// Snapshot returns a copy of the current rule list
func (c *RuleCache) Snapshot() []Rule {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Len returns the number of cached rules
func (c *RuleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.rules)
}
