package session

import (
	"context"
	"time"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
)

// Session is the authenticated state resolved at sign-in. The
// permission set is snapshotted here and lives exactly as long as the
// session does.
type Session struct {
	Token       string         `json:"token"`
	UserID      uint           `json:"user_id"`
	Email       string         `json:"email"`
	Permissions permission.Set `json:"permissions"`
	ExpiresAt   time.Time      `json:"expires_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store persists sessions keyed by token.
type Store interface {
	Save(ctx context.Context, sess *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type contextKey struct{}

func WithContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session of the current request, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok
}
