package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/adapters/store"
	"github.com/mikey/chat-spam-filter/internal/core"
)

// stubScorer returns a fixed score or error regardless of input
type stubScorer struct {
	score float64
	err   error
}

func (s *stubScorer) Score(ctx context.Context, message string) (float64, error) {
	return s.score, s.err
}

// failingStore wraps a store and forces selected operations to fail
type failingStore struct {
	core.RuleStore
	insertErr error
	scoreErr  error
}

func (f *failingStore) InsertRule(ctx context.Context, keyword string, score float64) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	return f.RuleStore.InsertRule(ctx, keyword, score)
}

func (f *failingStore) GetSpamScore(ctx context.Context, senderID string) (int64, error) {
	if f.scoreErr != nil {
		return 0, f.scoreErr
	}
	return f.RuleStore.GetSpamScore(ctx, senderID)
}

func newService(t *testing.T, st core.RuleStore, sc core.MessageScorer, threshold float64) *core.ScoringService {
	t.Helper()
	svc, err := core.NewScoringService(st, sc, zap.NewNop(), threshold)
	require.NoError(t, err)
	return svc
}

func TestEvaluateThresholdIsInclusive(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	// A score exactly at the threshold classifies as spam.
	svc := newService(t, st, &stubScorer{score: 5.0}, 5.0)
	eval := svc.Evaluate(ctx, "boundary")
	assert.True(t, eval.IsSpam)
	assert.Equal(t, 5.0, eval.Score)

	svc = newService(t, st, &stubScorer{score: 4.99}, 5.0)
	eval = svc.Evaluate(ctx, "under")
	assert.False(t, eval.IsSpam)
}

func TestEvaluateScorerFailureSoftFails(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(t, st, &stubScorer{err: errors.New("script exploded")}, 5.0)

	eval := svc.Evaluate(ctx, "anything")
	assert.Equal(t, 0.0, eval.Score)
	assert.False(t, eval.IsSpam)
}

func TestAddRuleWriteThrough(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(t, st, &stubScorer{}, 5.0)

	require.NoError(t, svc.AddRule(ctx, "spam", 10.0))

	rules := svc.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, core.Rule{Keyword: "spam", Score: 10.0}, rules[0])

	stored, err := st.LoadAllRules(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAddRuleInsertFailureLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{RuleStore: store.NewMemoryStore(), insertErr: errors.New("disk full")}
	svc := newService(t, st, &stubScorer{}, 5.0)

	err := svc.AddRule(ctx, "spam", 10.0)
	assert.Error(t, err)
	assert.Empty(t, svc.Rules())
}

func TestCachePopulatedAtConstruction(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.InsertRule(ctx, "spam", 10.0))
	require.NoError(t, st.InsertRule(ctx, "scam", 7.0))

	svc := newService(t, st, &stubScorer{}, 5.0)

	rules := svc.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "spam", rules[0].Keyword)
	assert.Equal(t, "scam", rules[1].Keyword)
}

func TestRecordOutcomeCounters(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(t, st, &stubScorer{}, 5.0)

	require.NoError(t, svc.RecordOutcome(ctx, "user1", true))
	require.NoError(t, svc.RecordOutcome(ctx, "user1", false))

	// Spam flags never decrement on a non-spam outcome.
	assert.Equal(t, int64(1), svc.GetReputation(ctx, "user1"))

	rep, err := st.GetReputation(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rep.MessageCount)
	assert.Equal(t, int64(1), rep.SpamFlags)
}

func TestGetReputationUnknownSender(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemoryStore(), &stubScorer{}, 5.0)

	assert.Equal(t, int64(0), svc.GetReputation(ctx, "nobody"))
}

func TestGetReputationStoreErrorDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{RuleStore: store.NewMemoryStore(), scoreErr: errors.New("connection lost")}
	svc := newService(t, st, &stubScorer{}, 5.0)

	assert.Equal(t, int64(0), svc.GetReputation(ctx, "user1"))
}

func TestGetReputationIsPureRead(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(t, st, &stubScorer{}, 5.0)

	require.NoError(t, svc.RecordOutcome(ctx, "user1", true))

	first := svc.GetReputation(ctx, "user1")
	second := svc.GetReputation(ctx, "user1")
	assert.Equal(t, first, second)
}
