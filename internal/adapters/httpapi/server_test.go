package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/adapters/store"
	"github.com/mikey/chat-spam-filter/internal/auth"
	"github.com/mikey/chat-spam-filter/internal/core"
	"github.com/mikey/chat-spam-filter/internal/notify"
)

// fixedScorer scores any message containing "spam" at 10, else 0
type fixedScorer struct{}

func (fixedScorer) Score(ctx context.Context, message string) (float64, error) {
	if strings.Contains(strings.ToLower(message), "spam") {
		return 10.0, nil
	}
	return 0.0, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := zap.NewNop()
	svc, err := core.NewScoringService(store.NewMemoryStore(), fixedScorer{}, logger, 5.0)
	require.NoError(t, err)

	return NewServer(
		svc,
		auth.NewTokenAuthorizer("secret", logger),
		notify.NewLogNotifier(logger),
		logger,
		"127.0.0.1:0",
	)
}

func doJSON(t *testing.T, s *Server, handler echo.HandlerFunc, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestHandleMessageClassifiesAndRecords(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, s.handleMessage, http.MethodPost, "/v1/messages",
		`{"sender_id":"u1","text":"buy SPAM now"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsSpam)
	assert.Equal(t, 10.0, resp.Score)
	assert.Equal(t, int64(1), resp.Reputation)

	// A clean message increments message count only.
	rec = doJSON(t, s, s.handleMessage, http.MethodPost, "/v1/messages",
		`{"sender_id":"u1","text":"hello"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsSpam)
	assert.Equal(t, 0.0, resp.Score)
	assert.Equal(t, int64(1), resp.Reputation)
}

func TestHandleMessageRequiresSenderID(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, s.handleMessage, http.MethodPost, "/v1/messages",
		`{"text":"hello"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAddRuleRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, s.handleAddRule, http.MethodPost, "/v1/rules",
		`{"keyword":"spam","score":10}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, s.handleAddRule, http.MethodPost, "/v1/rules",
		`{"keyword":"spam","score":10}`, map[string]string{adminTokenHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleAddRuleAppendsRule(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, s.handleAddRule, http.MethodPost, "/v1/rules",
		`{"keyword":"spam","score":10}`, map[string]string{adminTokenHeader: "secret"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rules := s.service.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, core.Rule{Keyword: "spam", Score: 10.0}, rules[0])
}

func TestHandleGetReputation(t *testing.T) {
	s := newTestServer(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reputation/:sender_id")
	c.SetParamNames("sender_id")
	c.SetParamValues("unknown")

	require.NoError(t, s.handleGetReputation(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp reputationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.SpamFlags)
}
