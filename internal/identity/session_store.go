package identity

import (
	"context"
	"errors"
	"time"
)

type TokenKind string

const (
	KindAccess   TokenKind = "access"
	KindRefresh  TokenKind = "refresh"
	KindRecovery TokenKind = "recovery"
)

var ErrSessionNotFound = errors.New("session not found")

// TokenRecord is what the store keeps for one issued token. Pair links an
// access token to its refresh token and back.
type TokenRecord struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Kind      TokenKind `json:"kind"`
	Pair      string    `json:"pair,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionStore interface {
	Save(ctx context.Context, token string, rec TokenRecord, ttl time.Duration) error

	Load(ctx context.Context, token string) (TokenRecord, error)

	Delete(ctx context.Context, tokens ...string) error
}
