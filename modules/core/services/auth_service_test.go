package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/user"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/session"
	"github.com/stroyhub/backoffice/modules/core/infrastructure/persistence"
	"github.com/stroyhub/backoffice/modules/core/services"
)

type fakeUserRepo struct {
	user.Repository
	byEmail map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, persistence.ErrUserNotFound
	}
	return u, nil
}

type fakePermissionRepo struct {
	set permission.Set
}

func (f *fakePermissionRepo) ResolveForUser(context.Context, uint) (permission.Set, error) {
	return f.set, nil
}

func (f *fakePermissionRepo) Upsert(context.Context, uint, uint, permission.ObjectPermission) error {
	return nil
}

func (f *fakePermissionRepo) Delete(context.Context, uint, uint) error { return nil }

type memSessionStore struct {
	byToken map[string]*session.Session
}

func (m *memSessionStore) Save(_ context.Context, s *session.Session) error {
	m.byToken[s.Token] = s
	return nil
}

func (m *memSessionStore) GetByToken(_ context.Context, token string) (*session.Session, error) {
	s, ok := m.byToken[token]
	if !ok {
		return nil, services.ErrInvalidCredentials
	}
	return s, nil
}

func (m *memSessionStore) Delete(_ context.Context, token string) error {
	delete(m.byToken, token)
	return nil
}

func newAuthFixture(t *testing.T) (*services.AuthService, *memSessionStore) {
	t.Helper()
	u, err := user.New("mgr@stroyhub.ru", "Anna", "Petrova").SetPassword("s3cret")
	require.NoError(t, err)
	hydrated := user.Hydrate(1, u.Email(), u.PasswordHash(), u.FirstName(), u.LastName(), true, u.CreatedAt(), u.UpdatedAt())

	set := permission.Set{}
	set.Merge(permission.ObjectPermission{ObjectCode: "chessboard", CanView: true, CanCreate: true})

	store := &memSessionStore{byToken: map[string]*session.Session{}}
	svc := services.NewAuthService(
		&fakeUserRepo{byEmail: map[string]user.User{hydrated.Email(): hydrated}},
		&fakePermissionRepo{set: set},
		store,
	)
	return svc, store
}

func TestSignInResolvesPermissionsIntoSession(t *testing.T) {
	svc, store := newAuthFixture(t)

	sess, err := svc.SignIn(context.Background(), "mgr@stroyhub.ru", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, uint(1), sess.UserID)
	require.True(t, sess.Permissions.Has("chessboard", permission.ActionView))
	require.False(t, sess.Permissions.Has("chessboard", permission.ActionDelete))
	require.Contains(t, store.byToken, sess.Token)
}

func TestSignInRejectsBadPasswordAndUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.SignIn(context.Background(), "mgr@stroyhub.ru", "wrong")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), "nobody@stroyhub.ru", "s3cret")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestSignOutDropsSession(t *testing.T) {
	svc, store := newAuthFixture(t)

	sess, err := svc.SignIn(context.Background(), "mgr@stroyhub.ru", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), sess.Token))
	require.NotContains(t, store.byToken, sess.Token)
}
