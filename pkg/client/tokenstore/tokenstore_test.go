package tokenstore_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittiBank/order-manage-web/pkg/client/tokenstore"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSetAccessToken_ExpiryHasSafetyBuffer(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := tokenstore.NewStore(tokenstore.NewMemoryStorage(), tokenstore.WithClock(fixedClock(now)))

	store.SetAccessToken("t", 3600)

	assert.False(t, store.IsTokenExpired())
	assert.Equal(t, 3300*time.Second, store.TimeUntilExpiry())
	assert.Equal(t, "t", store.AccessToken())
}

func TestIsTokenExpired_AfterLifetime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := now
	store := tokenstore.NewStore(tokenstore.NewMemoryStorage(), tokenstore.WithClock(func() time.Time {
		return current
	}))

	store.SetAccessToken("t", 3600)
	current = now.Add(time.Hour)

	assert.True(t, store.IsTokenExpired())
	assert.Zero(t, store.TimeUntilExpiry())
}

func TestIsTokenExpired_NoExpiryRecorded(t *testing.T) {
	store := tokenstore.NewStore(tokenstore.NewMemoryStorage())

	assert.True(t, store.IsTokenExpired())
	assert.Zero(t, store.TimeUntilExpiry())
}

func TestNilStorage_SafeDefaults(t *testing.T) {
	store := tokenstore.NewStore(nil)

	store.SetAccessToken("t", 3600)
	store.SetRefreshToken("r")
	store.SetUser(tokenstore.User{ID: "u1"})
	store.ClearAll()

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
	_, ok := store.User()
	assert.False(t, ok)
	assert.True(t, store.IsTokenExpired())
	assert.Zero(t, store.TimeUntilExpiry())
}

func TestUser_MalformedDataTreatedAsAbsent(t *testing.T) {
	storage := tokenstore.NewMemoryStorage()
	require.NoError(t, storage.Set("user", "{not json"))

	store := tokenstore.NewStore(storage)

	_, ok := store.User()
	assert.False(t, ok)
}

func TestUser_RoundTrip(t *testing.T) {
	store := tokenstore.NewStore(tokenstore.NewMemoryStorage())

	store.SetUser(tokenstore.User{ID: "u1", Name: "Somchai", Email: "s@example.com", Role: "CUSTOMER"})

	u, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Somchai", u.Name)
}

func TestClearAll_RemovesEverything(t *testing.T) {
	store := tokenstore.NewStore(tokenstore.NewMemoryStorage())
	store.SetAccessToken("t", 3600)
	store.SetRefreshToken("r")
	store.SetUser(tokenstore.User{ID: "u1"})

	store.ClearAll()

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
	_, ok := store.User()
	assert.False(t, ok)
	assert.True(t, store.IsTokenExpired())
}

func TestFileStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := tokenstore.NewStore(tokenstore.NewFileStorage(path))
	first.SetAccessToken("t", 3600)
	first.SetRefreshToken("r")
	first.SetUser(tokenstore.User{ID: "u1"})

	second := tokenstore.NewStore(tokenstore.NewFileStorage(path))

	assert.Equal(t, "t", second.AccessToken())
	assert.Equal(t, "r", second.RefreshToken())
	u, ok := second.User()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
}
