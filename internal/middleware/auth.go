package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/auth"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(h http.Header) (string, error) {
	authHeader := h.Get("Authorization")
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireSession returns an interceptor that validates the session token and
// checks it against the session the request targets. Procedures listed in
// public skip the check.
func RequireSession(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if open[req.Spec().Procedure] {
				return next(ctx, req)
			}

			tokenString, err := BearerToken(req.Header())
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			if scope := sessionScope(req); scope != claims.SessionID {
				return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrSessionDenied)
			}

			return next(ctx, req)
		}
	}
}

// sessionScope is the session a request message targets, or "".
func sessionScope(req connect.AnyRequest) string {
	if scoped, ok := req.Any().(eventapi.SessionScoped); ok {
		return scoped.SessionScope()
	}
	return ""
}

// StatusCode maps auth failures to HTTP statuses for non-Connect routes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrSessionDenied):
		return http.StatusForbidden
	default:
		return http.StatusUnauthorized
	}
}
