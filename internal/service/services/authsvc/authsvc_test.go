package authsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittiBank/order-manage-web/internal/dal/memory"
	"github.com/kittiBank/order-manage-web/internal/service/models/user"
	"github.com/kittiBank/order-manage-web/internal/service/services/authsvc"
)

type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestService(t *testing.T) (*authsvc.AuthService, *testClock) {
	t.Helper()

	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := authsvc.MustNewAuthService(
		authsvc.WithUserRepository(memory.NewUserRepository()),
		authsvc.WithTokenRepository(memory.NewTokenRepository()),
		authsvc.WithSecret([]byte("test-secret")),
		authsvc.WithClock(clock.Now),
	)

	return svc, clock
}

func register(t *testing.T, svc *authsvc.AuthService) *user.User {
	t.Helper()

	u, err := svc.Register(context.Background(), authsvc.RegisterRequest{
		Email:    "somchai@example.com",
		Password: "super-secret",
		Name:     "Somchai",
	})
	require.NoError(t, err)

	return u
}

func TestRegister_DefaultsToCustomerRole(t *testing.T) {
	svc, _ := newTestService(t)

	u := register(t, svc)

	assert.Equal(t, user.RoleCustomer, u.Role)
	assert.Equal(t, "somchai@example.com", u.Email)
	assert.NotEmpty(t, u.ID)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  authsvc.RegisterRequest
		want error
	}{
		{"bad email", authsvc.RegisterRequest{Email: "nope", Password: "super-secret", Name: "X"}, user.ErrInvalidInput},
		{"empty name", authsvc.RegisterRequest{Email: "a@b.c", Password: "super-secret"}, user.ErrInvalidInput},
		{"short password", authsvc.RegisterRequest{Email: "a@b.c", Password: "short", Name: "X"}, user.ErrInvalidInput},
		{"unknown role", authsvc.RegisterRequest{Email: "a@b.c", Password: "super-secret", Name: "X", Role: "WIZARD"}, user.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), authsvc.RegisterRequest{
		Email:    "SOMCHAI@example.com",
		Password: "super-secret",
		Name:     "Imposter",
	})

	require.ErrorIs(t, err, user.ErrEmailExists)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc)

	result, err := svc.Login(context.Background(), "somchai@example.com", "super-secret")

	require.NoError(t, err)
	assert.Equal(t, u.ID, result.User.ID)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, int64(3600), result.ExpiresIn)

	claims, err := svc.VerifyAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID())
	assert.Equal(t, u.Email, claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Login(context.Background(), "somchai@example.com", "not-the-password")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "super-secret")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc, clock := newTestService(t)
	register(t, svc)

	result, err := svc.Login(context.Background(), "somchai@example.com", "super-secret")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	_, err = svc.VerifyAccessToken(result.AccessToken)
	require.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestRefresh_IssuesFreshToken(t *testing.T) {
	svc, clock := newTestService(t)
	u := register(t, svc)

	result, err := svc.Login(context.Background(), "somchai@example.com", "super-secret")
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)

	accessToken, err := svc.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID())
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "no-such-token")

	require.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	svc, clock := newTestService(t)
	register(t, svc)

	result, err := svc.Login(context.Background(), "somchai@example.com", "super-secret")
	require.NoError(t, err)

	clock.Advance(31 * 24 * time.Hour)

	_, err = svc.Refresh(context.Background(), result.RefreshToken)
	require.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestLogout_RevokesRefreshTokens(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc)

	result, err := svc.Login(context.Background(), "somchai@example.com", "super-secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), result.RefreshToken)
	require.ErrorIs(t, err, authsvc.ErrInvalidToken)

	// Logging out twice is fine.
	require.NoError(t, svc.Logout(context.Background(), u.ID))
}
