package services

import (
	"context"
	"errors"
	"log"
	"time"

	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
	"taskhero.com/taskhero/internal/mail"
	model "taskhero.com/taskhero/internal/models"
)

type Notifier interface {
	Enqueue(msg mail.Message) bool
}

type AuthService struct {
	provider identity.Provider
	notifier Notifier
	resetURL string
	mailFrom string
}

type AuthResult struct {
	User    UserView          `json:"user"`
	Session *identity.Session `json:"session"`
}

type UserView struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	CreatedAt    time.Time      `json:"created_at"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

func NewAuthService(provider identity.Provider, notifier Notifier, resetURL, mailFrom string) *AuthService {
	return &AuthService{
		provider: provider,
		notifier: notifier,
		resetURL: resetURL,
		mailFrom: mailFrom,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string, fullName *string) (*AuthResult, error) {
	user, session, err := s.provider.SignUp(ctx, email, password, fullName)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, identityError("create user", err)
	}
	return &AuthResult{User: viewOf(user, false), Session: session}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, identityError("create session", err)
	}
	return &AuthResult{User: viewOf(user, false), Session: session}, nil
}

func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return apperrors.ErrInvalidToken
		}
		return identityError("logout", err)
	}
	return nil
}

// RequestPasswordReset succeeds whether or not the email is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	token, err := s.provider.IssueRecovery(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil
		}
		return identityError("request password reset", err)
	}

	msg, err := mail.PasswordReset(s.mailFrom, email, s.resetURL, token)
	if err != nil {
		return identityError("build reset email", err)
	}

	if !s.notifier.Enqueue(msg) {
		log.Printf("auth: mail queue full, dropped password reset for %s", email)
	}
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, token, password string) error {
	if err := s.provider.UpdatePassword(ctx, token, password); err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return apperrors.ErrInvalidRecoveryToken
		}
		return identityError("update password", err)
	}
	return nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*identity.Session, error) {
	session, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, identityError("refresh session", err)
	}
	return session, nil
}

func (s *AuthService) Profile(ctx context.Context, caller identity.Caller) (*UserView, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.Unauthorized("Unauthorized")
	}

	user, err := s.provider.GetUser(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, identityError("fetch user", err)
	}

	view := viewOf(user, true)
	return &view, nil
}

// Verify resolves a bearer token for the auth middleware.
func (s *AuthService) Verify(ctx context.Context, accessToken string) (identity.Caller, error) {
	caller, err := s.provider.Verify(ctx, accessToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return identity.Caller{}, apperrors.ErrInvalidToken
		}
		return identity.Caller{}, identityError("verify token", err)
	}
	return caller, nil
}

func viewOf(user *model.User, withMetadata bool) UserView {
	v := UserView{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}
	if withMetadata {
		v.UserMetadata = user.Metadata()
	}
	return v
}

func identityError(op string, err error) error {
	log.Printf("auth: %s: %v", op, err)
	return apperrors.Upstream("Failed to " + op)
}
