package auth

import (
	"crypto/subtle"

	"go.uber.org/zap"
)

// TokenAuthorizer authorizes admin operations against a single shared
// secret. An empty configured token denies everything, so a deployment
// that never sets one cannot accidentally run with open admin access.
type TokenAuthorizer struct {
	token  string
	logger *zap.Logger
}

// NewTokenAuthorizer creates a new token authorizer
func NewTokenAuthorizer(token string, logger *zap.Logger) *TokenAuthorizer {
	if token == "" && logger != nil {
		logger.Warn("No admin token configured, admin operations are disabled")
	}

	return &TokenAuthorizer{
		token:  token,
		logger: logger,
	}
}

// IsAuthorized reports whether the presented credential matches the
// configured token
func (a *TokenAuthorizer) IsAuthorized(actor, credential string) bool {
	if a.token == "" {
		return false
	}

	ok := subtle.ConstantTimeCompare([]byte(a.token), []byte(credential)) == 1
	if !ok && a.logger != nil {
		a.logger.Warn("Rejected admin operation", zap.String("actor", actor))
	}

	return ok
}
