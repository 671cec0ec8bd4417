package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mikey/chat-spam-filter/internal/core"
	"github.com/mikey/chat-spam-filter/internal/ports"
)

const adminTokenHeader = "X-Admin-Token"

// Server exposes the scoring service over HTTP. It is a thin adapter:
// it extracts message text and sender identity from requests, drives
// the four core operations, and maps results to responses. All policy
// lives in the core.
type Server struct {
	service    *core.ScoringService
	authorizer ports.Authorizer
	notifier   ports.Notifier
	logger     *zap.Logger
	listenAddr string
	echo       *echo.Echo
}

// NewServer creates a new HTTP server
func NewServer(
	service *core.ScoringService,
	authorizer ports.Authorizer,
	notifier ports.Notifier,
	logger *zap.Logger,
	listenAddr string,
) *Server {
	return &Server{
		service:    service,
		authorizer: authorizer,
		notifier:   notifier,
		logger:     logger,
		listenAddr: listenAddr,
	}
}

type messageRequest struct {
	SenderID string `json:"sender_id"`
	Text     string `json:"text"`
}

type messageResponse struct {
	Score      float64 `json:"score"`
	IsSpam     bool    `json:"is_spam"`
	Reputation int64   `json:"reputation"`
}

type ruleRequest struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

type reputationResponse struct {
	SenderID  string `json:"sender_id"`
	SpamFlags int64  `json:"spam_flags"`
}

// Start starts the HTTP server
func (s *Server) Start() error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.POST("/v1/messages", s.handleMessage)
	e.POST("/v1/rules", s.handleAddRule)
	e.GET("/v1/reputation/:sender_id", s.handleGetReputation)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo = e
	s.logger.Info("HTTP server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := e.Start(s.listenAddr); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the HTTP server down
func (s *Server) Stop() error {
	if s.echo == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

// handleMessage evaluates a message and records the outcome against
// the sender's reputation. A failed reputation write is logged but
// never blocks the response; spam detection proceeds regardless.
func (s *Server) handleMessage(c echo.Context) error {
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.SenderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sender_id is required"})
	}

	ctx := c.Request().Context()

	eval := s.service.Evaluate(ctx, req.Text)

	if err := s.service.RecordOutcome(ctx, req.SenderID, eval.IsSpam); err != nil {
		s.logger.Error("Failed to record outcome", zap.Error(err), zap.String("sender_id", req.SenderID))
	}

	reputation := s.service.GetReputation(ctx, req.SenderID)

	if eval.IsSpam {
		if err := s.notifier.NotifySpam(ctx, req.SenderID, req.Text, reputation); err != nil {
			s.logger.Error("Failed to notify moderators", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, messageResponse{
		Score:      eval.Score,
		IsSpam:     eval.IsSpam,
		Reputation: reputation,
	})
}

// handleAddRule appends a rule. The requester learns about a failed
// durable write explicitly.
func (s *Server) handleAddRule(c echo.Context) error {
	token := c.Request().Header.Get(adminTokenHeader)
	if !s.authorizer.IsAuthorized(c.RealIP(), token) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	var req ruleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Keyword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "keyword is required"})
	}

	if err := s.service.AddRule(c.Request().Context(), req.Keyword, req.Score); err != nil {
		s.logger.Error("Failed to add rule", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to add rule"})
	}

	return c.JSON(http.StatusCreated, req)
}

// handleGetReputation returns the sender's spam flag count
func (s *Server) handleGetReputation(c echo.Context) error {
	senderID := c.Param("sender_id")
	spamFlags := s.service.GetReputation(c.Request().Context(), senderID)

	return c.JSON(http.StatusOK, reputationResponse{
		SenderID:  senderID,
		SpamFlags: spamFlags,
	})
}
