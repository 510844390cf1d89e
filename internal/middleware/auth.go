package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/live-gallery/internal/auth"
	"github.com/JaimeStill/live-gallery/pkg/handlers"
)

type contextKey string

const identityKey contextKey = "identity"

// Guard enforces bearer token authentication on protected routes.
type Guard struct {
	tokens *auth.Tokens
	logger *slog.Logger
}

func NewGuard(tokens *auth.Tokens, logger *slog.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		logger: logger.With("middleware", "auth"),
	}
}

// Require wraps a handler so it only runs with a valid bearer token.
// The verified claims are placed on the request context.
func (g *Guard) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			handlers.RespondError(w, r, g.logger, http.StatusUnauthorized, err)
			return
		}

		claims, err := g.tokens.Parse(token)
		if err != nil {
			handlers.RespondError(w, r, g.logger, http.StatusUnauthorized, errors.New("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// Identity returns the authenticated claims set by Require.
func Identity(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(identityKey).(*auth.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("Authorization header is required")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("Authorization header must be a bearer token")
	}

	return token, nil
}
