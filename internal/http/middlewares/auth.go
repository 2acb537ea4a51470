package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
)

const (
	callerKey = "caller"
	tokenKey  = "token"
)

// Verifier resolves a bearer token into the caller it belongs to.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (identity.Caller, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(v Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c.Request())
			if token == "" {
				return apperrors.ErrNoToken
			}

			caller, err := v.Verify(c.Request().Context(), token)
			if err != nil {
				return apperrors.ErrInvalidToken
			}

			c.Set(callerKey, caller)
			c.Set(tokenKey, token)
			return next(c)
		}
	}
}

// OptionalAuth attaches the caller when a valid token is present and
// continues anonymously otherwise.
func OptionalAuth(v Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := BearerToken(c.Request()); token != "" {
				if caller, err := v.Verify(c.Request().Context(), token); err == nil {
					c.Set(callerKey, caller)
					c.Set(tokenKey, token)
				}
			}
			return next(c)
		}
	}
}

func CallerFrom(c echo.Context) identity.Caller {
	if caller, ok := c.Get(callerKey).(identity.Caller); ok {
		return caller
	}
	return identity.Anonymous()
}

func TokenFrom(c echo.Context) string {
	if token, ok := c.Get(tokenKey).(string); ok {
		return token
	}
	return BearerToken(c.Request())
}

func BearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
