package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kittiBank/order-manage-web/pkg/client/tokenstore"
)

// DefaultExpiresIn is assumed when the server does not report a token
// lifetime.
const DefaultExpiresIn = 3600

// ErrNoRefreshToken is returned by Refresh when no refresh token is
// stored. The session is left untouched.
var ErrNoRefreshToken = errors.New("no refresh token available")

// API is the slice of the server the manager needs.
type API interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	ServerLogout(ctx context.Context) error
}

// Session is a point-in-time snapshot of the authentication state.
type Session struct {
	User            tokenstore.User
	IsAuthenticated bool
}

// Manager owns the authentication state and renews the access token
// before it expires. Safe for concurrent use.
type Manager struct {
	store *tokenstore.Store
	api   API

	mu              sync.Mutex
	user            tokenstore.User
	isAuthenticated bool
	timer           *time.Timer

	refreshGroup singleflight.Group
}

// NewManager creates a manager over the given store. Call Rehydrate to
// restore a previously persisted session.
func NewManager(store *tokenstore.Store, api API) *Manager {
	return &Manager{
		store: store,
		api:   api,
	}
}

// Rehydrate restores the session from the token store. A stored user
// with a live token authenticates immediately; an expired token
// triggers a refresh, and a failed refresh tears the session down.
func (m *Manager) Rehydrate(ctx context.Context) {
	user, ok := m.store.User()
	if !ok || m.store.AccessToken() == "" {
		return
	}

	m.mu.Lock()
	m.user = user
	m.isAuthenticated = true
	m.mu.Unlock()

	if m.store.IsTokenExpired() {
		if err := m.Refresh(ctx); err != nil {
			slog.Warn("Session rehydration refresh failed", "error", err)
			// An expired token that cannot be refreshed leaves nothing
			// to restore. Refresh without a stored refresh token is
			// side-effect free, so tear down here.
			m.teardown()
		}

		return
	}

	m.armTimer()
}

// Login records a fresh session and arms the renewal timer. A
// non-positive expiresIn falls back to DefaultExpiresIn.
func (m *Manager) Login(user tokenstore.User, accessToken, refreshToken string, expiresIn int64) {
	if expiresIn <= 0 {
		expiresIn = DefaultExpiresIn
	}

	m.store.SetAccessToken(accessToken, expiresIn)
	m.store.SetRefreshToken(refreshToken)
	m.store.SetUser(user)

	m.mu.Lock()
	m.user = user
	m.isAuthenticated = true
	m.mu.Unlock()

	m.armTimer()
}

// Logout invalidates the session server-side on a best-effort basis
// and always tears down the local session.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.ServerLogout(ctx); err != nil {
		slog.Warn("Server-side logout failed", "error", err)
	}

	m.teardown()
}

// Refresh exchanges the stored refresh token for a new access token.
// Concurrent callers share a single in-flight attempt. Failure tears
// the session down.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		refreshToken := m.store.RefreshToken()
		if refreshToken == "" {
			return nil, ErrNoRefreshToken
		}

		accessToken, err := m.api.RefreshAccessToken(ctx, refreshToken)
		if err != nil {
			// The refresh token is no longer usable, so there is no
			// server call to make. Local teardown only.
			m.teardown()

			return nil, fmt.Errorf("failed to refresh access token: %w", err)
		}

		m.store.SetAccessToken(accessToken, DefaultExpiresIn)
		m.armTimer()

		return nil, nil
	})

	return err
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Session{
		User:            m.user,
		IsAuthenticated: m.isAuthenticated,
	}
}

// Close stops the renewal timer without touching the stored session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
}

// armTimer schedules one renewal at the token's remaining lifetime.
// Any previously armed timer is cancelled first.
func (m *Manager) armTimer() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimerLocked()
	m.timer = time.AfterFunc(m.store.TimeUntilExpiry(), func() {
		if err := m.Refresh(context.Background()); err != nil {
			slog.Warn("Scheduled token refresh failed", "error", err)
		}
	})
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) teardown() {
	m.mu.Lock()
	m.stopTimerLocked()
	m.user = tokenstore.User{}
	m.isAuthenticated = false
	m.mu.Unlock()

	m.store.ClearAll()
}
