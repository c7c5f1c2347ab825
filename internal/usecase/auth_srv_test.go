package usecase

import (
	"context"
	"testing"
	"time"

	"conference-booking/internal/dto/request"
	"conference-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAuthFixture(t *testing.T) (*memStore, AuthService) {
	t.Helper()
	store := newMemStore()
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 2}}
	return store, NewAuthService(store.repository(), config, zaptest.NewLogger(t))
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	store, svc := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &request.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Positive(t, registered.UserID)
	assert.NotEmpty(t, registered.Token)

	user, err := store.scoped().User.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	loggedIn, err := svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, loggedIn.UserID)
	assert.NotEqual(t, registered.Token, loggedIn.Token)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), loggedIn.ExpiresAt, time.Minute)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	_, svc := newAuthFixture(t)
	req := &request.RegisterRequest{Email: "ana@example.com", Password: "secret123"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_Validation(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{Email: "not-an-email", Password: "123"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	_, svc := newAuthFixture(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, &request.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "bob@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	store, svc := newAuthFixture(t)
	ctx := context.Background()
	resp, err := svc.Register(ctx, &request.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	session, err := store.scoped().Session.FindValidSession(ctx, resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session)

	assert.ErrorIs(t, svc.Logout(ctx, resp.Token), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Logout(ctx, "not-a-uuid"), ErrInvalidCredentials)
}

func TestAuthService_LogoutAll(t *testing.T) {
	store, svc := newAuthFixture(t)
	ctx := context.Background()
	first, err := svc.Register(ctx, &request.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, first.UserID))

	for _, token := range []string{first.Token, second.Token} {
		session, err := store.scoped().Session.FindValidSession(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, session)
	}
}

func TestUserService_GetProfile(t *testing.T) {
	store, auth := newAuthFixture(t)
	ctx := context.Background()
	registered, err := auth.Register(ctx, &request.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	svc := NewUserService(store.scoped().User, zaptest.NewLogger(t))

	profile, err := svc.GetProfile(ctx, registered.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)

	_, err = svc.GetProfile(ctx, registered.UserID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}
