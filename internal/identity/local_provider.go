package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
)

type Options struct {
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	RecoveryTTL time.Duration
	BcryptCost  int
}

// LocalProvider keeps users in the application database and sessions in a
// SessionStore.
type LocalProvider struct {
	users    *repository.UserRepository
	sessions SessionStore
	opts     Options
	now      func() time.Time
}

func NewLocalProvider(users *repository.UserRepository, sessions SessionStore, opts Options) *LocalProvider {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &LocalProvider{
		users:    users,
		sessions: sessions,
		opts:     opts,
		now:      time.Now,
	}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string, fullName *string) (*model.User, *Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.opts.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
	}
	if err := p.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	session, err := p.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*model.User, *Session, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := p.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (p *LocalProvider) Verify(ctx context.Context, accessToken string) (Caller, error) {
	rec, err := p.load(ctx, accessToken, KindAccess)
	if err != nil {
		return Caller{}, err
	}

	user, err := p.GetUser(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Caller{}, ErrInvalidToken
		}
		return Caller{}, err
	}

	return Caller{ID: user.ID, Email: user.Email, Metadata: user.Metadata()}, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, accessToken string) error {
	rec, err := p.load(ctx, accessToken, KindAccess)
	if err != nil {
		return err
	}
	return p.sessions.Delete(ctx, accessToken, rec.Pair)
}

func (p *LocalProvider) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	rec, err := p.load(ctx, refreshToken, KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := p.GetUser(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if err := p.sessions.Delete(ctx, refreshToken, rec.Pair); err != nil {
		return nil, err
	}
	return p.issueSession(ctx, user)
}

func (p *LocalProvider) IssueRecovery(ctx context.Context, email string) (string, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}

	rec := TokenRecord{
		UserID:    user.ID,
		Email:     user.Email,
		Kind:      KindRecovery,
		ExpiresAt: p.now().Add(p.opts.RecoveryTTL).UTC(),
	}
	if err := p.sessions.Save(ctx, token, rec, p.opts.RecoveryTTL); err != nil {
		return "", err
	}
	return token, nil
}

// UpdatePassword accepts a recovery token or a live access token. Recovery
// tokens are single use.
func (p *LocalProvider) UpdatePassword(ctx context.Context, token, password string) error {
	rec, err := p.load(ctx, token, KindRecovery, KindAccess)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.opts.BcryptCost)
	if err != nil {
		return err
	}

	if err := p.users.UpdatePassword(ctx, rec.UserID, string(hash)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if rec.Kind == KindRecovery {
		return p.sessions.Delete(ctx, token)
	}
	return nil
}

func (p *LocalProvider) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := p.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (p *LocalProvider) load(ctx context.Context, token string, kinds ...TokenKind) (TokenRecord, error) {
	if token == "" {
		return TokenRecord{}, ErrInvalidToken
	}

	rec, err := p.sessions.Load(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return TokenRecord{}, ErrInvalidToken
		}
		return TokenRecord{}, err
	}

	if !p.now().Before(rec.ExpiresAt) {
		return TokenRecord{}, ErrInvalidToken
	}

	for _, k := range kinds {
		if rec.Kind == k {
			return rec, nil
		}
	}
	return TokenRecord{}, ErrInvalidToken
}

func (p *LocalProvider) issueSession(ctx context.Context, user *model.User) (*Session, error) {
	access, err := newToken()
	if err != nil {
		return nil, err
	}
	refresh, err := newToken()
	if err != nil {
		return nil, err
	}

	now := p.now()
	accessExp := now.Add(p.opts.AccessTTL).UTC()

	if err := p.sessions.Save(ctx, access, TokenRecord{
		UserID:    user.ID,
		Email:     user.Email,
		Kind:      KindAccess,
		Pair:      refresh,
		ExpiresAt: accessExp,
	}, p.opts.AccessTTL); err != nil {
		return nil, err
	}

	if err := p.sessions.Save(ctx, refresh, TokenRecord{
		UserID:    user.ID,
		Email:     user.Email,
		Kind:      KindRefresh,
		Pair:      access,
		ExpiresAt: now.Add(p.opts.RefreshTTL).UTC(),
	}, p.opts.RefreshTTL); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(p.opts.AccessTTL / time.Second),
		ExpiresAt:    accessExp.Unix(),
	}, nil
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
