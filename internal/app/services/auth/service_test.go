package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "stayhub/internal/domain/auth"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/sessions"
	"stayhub/internal/infra/storage/memory"
)

func newAuthService() *Service {
	return &Service{
		Users:      memory.NewUserRepository(),
		Sessions:   sessions.NewMemoryStore(),
		Passwords:  security.BcryptHasher{Cost: 4},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
	}
}

func TestRegisterAndResolve(t *testing.T) {
	svc := newAuthService()

	result, err := svc.Register(context.Background(), RegisterParams{
		Email:    "Guest@Example.com",
		Name:     "Guest",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "guest@example.com", result.User.Email)
	assert.True(t, result.User.HasRole(domainuser.RoleGuest))

	resolved, err := svc.ResolveToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, resolved.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()
	_, err := svc.Register(context.Background(), RegisterParams{
		Email: "a@b.c", Name: "A", Password: "long enough",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterParams{
		Email: "A@B.C", Name: "B", Password: "long enough",
	})
	require.ErrorIs(t, err, domainuser.ErrEmailAlreadyUsed)
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newAuthService()
	_, err := svc.Register(context.Background(), RegisterParams{
		Email: "a@b.c", Name: "A", Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService()
	_, err := svc.Register(context.Background(), RegisterParams{
		Email: "a@b.c", Name: "A", Password: "long enough",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginParams{Email: "a@b.c", Password: "wrong wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, fault.Is(err, fault.PermissionDenied))

	_, err = svc.Login(context.Background(), LoginParams{Email: "missing@b.c", Password: "whatever!"})
	require.ErrorIs(t, err, ErrInvalidCredentials, "unknown email is indistinguishable from a bad password")
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newAuthService()
	result, err := svc.Register(context.Background(), RegisterParams{
		Email: "a@b.c", Name: "A", Password: "long enough",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.Token))
	_, err = svc.ResolveToken(context.Background(), result.Token)
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}
