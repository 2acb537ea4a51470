package identity

import (
	"context"
	"errors"

	model "taskhero.com/taskhero/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// Session is the credential pair handed to a client after sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Provider is everything the API needs from an identity service: password
// sign-up and sign-in, bearer verification, refresh, and reset by link.
type Provider interface {
	SignUp(ctx context.Context, email, password string, fullName *string) (*model.User, *Session, error)

	SignIn(ctx context.Context, email, password string) (*model.User, *Session, error)

	Verify(ctx context.Context, accessToken string) (Caller, error)

	SignOut(ctx context.Context, accessToken string) error

	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	// IssueRecovery returns a one-time token that UpdatePassword accepts.
	IssueRecovery(ctx context.Context, email string) (string, error)

	UpdatePassword(ctx context.Context, token, password string) error

	GetUser(ctx context.Context, id string) (*model.User, error)
}
