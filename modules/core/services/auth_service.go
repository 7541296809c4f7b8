package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/user"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/session"
	"github.com/stroyhub/backoffice/modules/core/infrastructure/persistence"
	"github.com/stroyhub/backoffice/pkg/configuration"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	users       user.Repository
	permissions persistence.PermissionRepository
	sessions    session.Store
}

func NewAuthService(
	users user.Repository,
	permissions persistence.PermissionRepository,
	sessions session.Store,
) *AuthService {
	return &AuthService{
		users:       users,
		permissions: permissions,
		sessions:    sessions,
	}
}

// SignIn authenticates by email and password, resolves the user's
// permission set once, and stores both behind a fresh session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive() || !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	set, err := s.permissions.ResolveForUser(ctx, u.ID())
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve permissions")
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	conf := configuration.Use()
	sess := &session.Session{
		Token:       token,
		UserID:      u.ID(),
		Email:       u.Email(),
		Permissions: set,
		ExpiresAt:   time.Now().Add(conf.Session.TTL),
		CreatedAt:   time.Now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *AuthService) Authorize(ctx context.Context, token string) (*session.Session, error) {
	return s.sessions.GetByToken(ctx, token)
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
