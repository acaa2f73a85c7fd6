package tokenstore

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"
)

// Storage keys. Fixed so different processes sharing a FileStorage see
// the same session.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyUser         = "user"
	keyTokenExpiry  = "tokenExpiry"
)

// expiryBuffer is subtracted from the reported token lifetime so the
// token is renewed before the server rejects it.
const expiryBuffer = 300 * time.Second

// User is the profile persisted alongside the tokens.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Store persists the access token, refresh token, user profile and
// token expiry. All operations are no-ops returning safe defaults when
// the store was built without a Storage.
type Store struct {
	storage Storage
	now     func() time.Time
}

// option is a function that configures the Store.
type option func(*Store)

// NewStore creates a token store over the given storage. A nil storage
// is allowed and makes every operation a safe no-op.
func NewStore(storage Storage, opts ...option) *Store {
	s := &Store{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *Store) {
		s.now = now
	}
}

// SetAccessToken persists the token and records the absolute instant
// after which it should be considered expired.
func (s *Store) SetAccessToken(token string, expiresIn int64) {
	if s.storage == nil {
		return
	}

	expiry := s.now().Add(time.Duration(expiresIn)*time.Second - expiryBuffer)

	s.set(keyAccessToken, token)
	s.set(keyTokenExpiry, strconv.FormatInt(expiry.UnixMilli(), 10))
}

// SetRefreshToken persists the refresh token.
func (s *Store) SetRefreshToken(token string) {
	if s.storage == nil {
		return
	}
	s.set(keyRefreshToken, token)
}

// SetUser persists the user profile as JSON.
func (s *Store) SetUser(u User) {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(u)
	if err != nil {
		slog.Error("Failed to encode user profile", "error", err)

		return
	}
	s.set(keyUser, string(data))
}

// AccessToken returns the stored access token, or empty when absent.
func (s *Store) AccessToken() string {
	return s.get(keyAccessToken)
}

// RefreshToken returns the stored refresh token, or empty when absent.
func (s *Store) RefreshToken() string {
	return s.get(keyRefreshToken)
}

// User returns the stored profile. Malformed stored data is logged and
// treated as absent.
func (s *Store) User() (User, bool) {
	raw := s.get(keyUser)
	if raw == "" {
		return User{}, false
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		slog.Error("Failed to parse stored user profile", "error", err)

		return User{}, false
	}

	return u, true
}

// IsTokenExpired reports whether the stored token should no longer be
// used. True when no expiry is recorded.
func (s *Store) IsTokenExpired() bool {
	expiry, ok := s.expiry()
	if !ok {
		return true
	}

	return !s.now().Before(expiry)
}

// TimeUntilExpiry returns the remaining token lifetime, zero when the
// token is already expired or no expiry is recorded.
func (s *Store) TimeUntilExpiry() time.Duration {
	expiry, ok := s.expiry()
	if !ok {
		return 0
	}

	remaining := expiry.Sub(s.now())
	if remaining < 0 {
		return 0
	}

	return remaining
}

// ClearAll removes all four keys.
func (s *Store) ClearAll() {
	if s.storage == nil {
		return
	}

	for _, key := range []string{keyAccessToken, keyRefreshToken, keyUser, keyTokenExpiry} {
		if err := s.storage.Delete(key); err != nil {
			slog.Error("Failed to delete stored value", "key", key, "error", err)
		}
	}
}

func (s *Store) expiry() (time.Time, bool) {
	raw := s.get(keyTokenExpiry)
	if raw == "" {
		return time.Time{}, false
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Error("Failed to parse stored token expiry", "error", err)

		return time.Time{}, false
	}

	return time.UnixMilli(millis), true
}

func (s *Store) get(key string) string {
	if s.storage == nil {
		return ""
	}

	value, err := s.storage.Get(key)
	if err != nil {
		slog.Error("Failed to read stored value", "key", key, "error", err)

		return ""
	}

	return value
}

func (s *Store) set(key, value string) {
	if err := s.storage.Set(key, value); err != nil {
		slog.Error("Failed to write stored value", "key", key, "error", err)
	}
}
