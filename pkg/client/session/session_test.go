package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittiBank/order-manage-web/pkg/client/session"
	"github.com/kittiBank/order-manage-web/pkg/client/tokenstore"
)

type fakeAPI struct {
	mu            sync.Mutex
	refreshCalls  int32
	refreshErr    error
	refreshDelay  time.Duration
	logoutCalls   int32
	logoutErr     error
	nextToken     string
	seenRefreshes []string
}

func (a *fakeAPI) RefreshAccessToken(_ context.Context, refreshToken string) (string, error) {
	atomic.AddInt32(&a.refreshCalls, 1)
	a.mu.Lock()
	a.seenRefreshes = append(a.seenRefreshes, refreshToken)
	a.mu.Unlock()

	if a.refreshDelay > 0 {
		time.Sleep(a.refreshDelay)
	}
	if a.refreshErr != nil {
		return "", a.refreshErr
	}

	token := a.nextToken
	if token == "" {
		token = "fresh-token"
	}

	return token, nil
}

func (a *fakeAPI) ServerLogout(context.Context) error {
	atomic.AddInt32(&a.logoutCalls, 1)

	return a.logoutErr
}

func newManager(api *fakeAPI) (*session.Manager, *tokenstore.Store) {
	store := tokenstore.NewStore(tokenstore.NewMemoryStorage())
	m := session.NewManager(store, api)

	return m, store
}

func TestRehydrate_EmptyStoreStaysAnonymous(t *testing.T) {
	m, _ := newManager(&fakeAPI{})

	m.Rehydrate(context.Background())

	assert.False(t, m.Session().IsAuthenticated)
}

func TestRehydrate_LiveSessionAuthenticates(t *testing.T) {
	api := &fakeAPI{}
	m, store := newManager(api)
	store.SetAccessToken("t", 3600)
	store.SetRefreshToken("r")
	store.SetUser(tokenstore.User{ID: "u1", Name: "Somchai"})

	m.Rehydrate(context.Background())
	defer m.Close()

	snap := m.Session()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "u1", snap.User.ID)
	assert.Zero(t, atomic.LoadInt32(&api.refreshCalls))
}

func TestRehydrate_ExpiredTokenRefreshes(t *testing.T) {
	api := &fakeAPI{}
	m, store := newManager(api)
	store.SetAccessToken("t", 0) // expiry already in the past
	store.SetRefreshToken("r")
	store.SetUser(tokenstore.User{ID: "u1"})

	m.Rehydrate(context.Background())
	defer m.Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&api.refreshCalls))
	assert.True(t, m.Session().IsAuthenticated)
	assert.Equal(t, "fresh-token", store.AccessToken())
	assert.False(t, store.IsTokenExpired())
}

func TestRehydrate_FailedRefreshTearsDown(t *testing.T) {
	api := &fakeAPI{refreshErr: errors.New("token revoked")}
	m, store := newManager(api)
	store.SetAccessToken("t", 0)
	store.SetRefreshToken("r")
	store.SetUser(tokenstore.User{ID: "u1"})

	m.Rehydrate(context.Background())

	assert.False(t, m.Session().IsAuthenticated)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestRehydrate_ExpiredTokenWithoutRefreshTokenTearsDown(t *testing.T) {
	api := &fakeAPI{}
	m, store := newManager(api)
	store.SetAccessToken("t", 0) // expired, and no refresh token stored
	store.SetUser(tokenstore.User{ID: "u1"})

	m.Rehydrate(context.Background())

	assert.False(t, m.Session().IsAuthenticated)
	assert.Empty(t, store.AccessToken())
	_, ok := store.User()
	assert.False(t, ok)
	assert.Zero(t, atomic.LoadInt32(&api.refreshCalls))
}

func TestLogin_PersistsAndAuthenticates(t *testing.T) {
	m, store := newManager(&fakeAPI{})
	defer m.Close()

	m.Login(tokenstore.User{ID: "u1", Email: "s@example.com"}, "access", "refresh", 3600)

	snap := m.Session()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "u1", snap.User.ID)
	assert.Equal(t, "access", store.AccessToken())
	assert.Equal(t, "refresh", store.RefreshToken())
	assert.False(t, store.IsTokenExpired())
}

func TestLogin_TimerRenewsExpiringToken(t *testing.T) {
	api := &fakeAPI{}
	m, store := newManager(api)
	defer m.Close()

	// With the 300s safety buffer this token is due for renewal now.
	m.Login(tokenstore.User{ID: "u1"}, "access", "refresh", 1)

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&api.refreshCalls) >= 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "fresh-token", store.AccessToken())
}

func TestLogout_BestEffortServerCall(t *testing.T) {
	api := &fakeAPI{logoutErr: errors.New("server down")}
	m, store := newManager(api)
	m.Login(tokenstore.User{ID: "u1"}, "access", "refresh", 3600)

	m.Logout(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&api.logoutCalls))
	assert.False(t, m.Session().IsAuthenticated)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestRefresh_NoTokenIsSideEffectFree(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newManager(api)

	err := m.Refresh(context.Background())

	require.ErrorIs(t, err, session.ErrNoRefreshToken)
	assert.Zero(t, atomic.LoadInt32(&api.refreshCalls))
}

func TestRefresh_ConcurrentCallersShareOneFlight(t *testing.T) {
	api := &fakeAPI{refreshDelay: 50 * time.Millisecond}
	m, store := newManager(api)
	defer m.Close()
	store.SetRefreshToken("r")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Refresh(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&api.refreshCalls))
	assert.Equal(t, "fresh-token", store.AccessToken())
}

func TestRefresh_FailureClearsSession(t *testing.T) {
	api := &fakeAPI{refreshErr: errors.New("nope")}
	m, store := newManager(api)
	m.Login(tokenstore.User{ID: "u1"}, "access", "refresh", 3600)

	err := m.Refresh(context.Background())

	require.Error(t, err)
	assert.False(t, m.Session().IsAuthenticated)
	assert.Empty(t, store.RefreshToken())
}
