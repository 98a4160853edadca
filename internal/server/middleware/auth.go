// Package middleware provides HTTP middleware shared by the API routes.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values
type ContextKey string

const clientKey ContextKey = "client"

// ErrNoClient is returned by ClientFrom when the request was not
// authenticated.
var ErrNoClient = errors.New("no authenticated client in request context")

// TokenValidator checks a bearer token and returns the client it was
// issued to.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// TokenValidatorFunc adapts a function to TokenValidator
type TokenValidatorFunc func(token string) (string, error)

// ValidateToken calls f.
func (f TokenValidatorFunc) ValidateToken(token string) (string, error) {
	return f(token)
}

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// token and stores the token's client in the request context.
func RequireBearer(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			client, err := validator.ValidateToken(token)
			if err != nil || client == "" {
				unauthorized(w, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), clientKey, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="skillscan"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ClientFrom returns the authenticated client of r.
func ClientFrom(r *http.Request) (string, error) {
	client, ok := r.Context().Value(clientKey).(string)
	if !ok || client == "" {
		return "", ErrNoClient
	}
	return client, nil
}

// WithClient returns a copy of ctx carrying client, for handler tests.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey, client)
}
