package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"userId": "user-1",
		"iat":    time.Now().Unix(),
		"exp":    expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return token
}

func TestSetSessionPersistence(t *testing.T) {
	t.Parallel()

	token := mintToken(t, time.Now().Add(time.Hour))

	t.Run("remember me writes to the store", func(t *testing.T) {
		store := NewMemoryStore()
		m := NewManager(store)

		require.NoError(t, m.SetSession(token, true))

		saved, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, token, saved)
	})

	t.Run("a plain session stays in memory", func(t *testing.T) {
		store := NewMemoryStore()
		m := NewManager(store)

		require.NoError(t, m.SetSession(token, false))
		require.True(t, m.Authenticated())

		_, err := store.Load()
		require.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("a nil store is memory-only", func(t *testing.T) {
		m := NewManager(nil)

		require.NoError(t, m.SetSession(token, true))
		require.True(t, m.Authenticated())
	})
}

func TestManagerResumesPersistedSession(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)
	token := mintToken(t, time.Now().Add(time.Hour))

	first := NewManager(store)
	require.NoError(t, first.SetSession(token, true))

	// A fresh manager, as after a restart, picks the token back up.
	second := NewManager(store)
	got, ok := second.Token()
	require.True(t, ok)
	require.Equal(t, token, got)
}

func TestManagerIgnoresExpiredPersistedToken(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.Save(mintToken(t, time.Now().Add(-time.Minute))))

	m := NewManager(store)
	require.False(t, m.Authenticated())
}

func TestTokenExpiryIsDecidedLocally(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	require.NoError(t, m.SetSession(mintToken(t, time.Now().Add(50*time.Millisecond)), false))

	now := time.Now()
	m.now = func() time.Time { return now }
	require.True(t, m.Authenticated())

	m.now = func() time.Time { return now.Add(time.Minute) }
	_, ok := m.Token()
	require.False(t, ok)
}

func TestTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	require.NoError(t, m.SetSession("not-a-jwt", false))

	_, ok := m.Token()
	require.False(t, ok)
}

func TestClientAttachesBearerHeader(t *testing.T) {
	t.Parallel()

	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	token := mintToken(t, time.Now().Add(time.Hour))
	m := NewManager(nil)
	require.NoError(t, m.SetSession(token, false))

	resp, err := m.Client(nil).Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, "Bearer "+token, seen)
}

func TestClientOmitsHeaderWithoutSession(t *testing.T) {
	t.Parallel()

	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	m := NewManager(nil)
	resp, err := m.Client(nil).Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Empty(t, seen)
}

func TestClientClearsSessionOn401(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	store := NewMemoryStore()
	m := NewManager(store)
	require.NoError(t, m.SetSession(mintToken(t, time.Now().Add(time.Hour)), true))

	fired := false
	m.OnUnauthorized(func() { fired = true })

	resp, err := m.Client(nil).Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.True(t, fired)
	require.False(t, m.Authenticated())

	_, loadErr := store.Load()
	require.ErrorIs(t, loadErr, ErrNoToken)
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save("abc"))
	token, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoToken)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}
