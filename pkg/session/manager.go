// Package session manages a client-side bearer-token session: it decides
// expiry locally by decoding the token's exp claim, attaches the token to
// outbound requests, and clears the session on any 401 response.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Manager struct {
	mu             sync.RWMutex
	token          string
	persistent     Store
	onUnauthorized func()
	now            func() time.Time
}

// NewManager builds a session manager. persistent may be nil for a
// memory-only session; when set, a previously persisted token is picked up
// if it has not expired.
func NewManager(persistent Store) *Manager {
	m := &Manager{persistent: persistent, now: time.Now}

	if persistent != nil {
		if token, err := persistent.Load(); err == nil && !m.expired(token) {
			m.token = token
		}
	}

	return m
}

// OnUnauthorized registers the callback fired when a request comes back 401.
// The UI shell wires its redirect-to-login here.
func (m *Manager) OnUnauthorized(fn func()) {
	m.mu.Lock()
	m.onUnauthorized = fn
	m.mu.Unlock()
}

// SetSession stores the token from a login or registration response. Only a
// remember-me session touches durable storage; otherwise the token lives in
// memory for the process lifetime.
func (m *Manager) SetSession(token string, remember bool) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	if remember && m.persistent != nil {
		return m.persistent.Save(token)
	}
	return nil
}

// Token returns the current token, dropping it first when the exp claim has
// passed. Checking locally avoids sending a request that is doomed to 401.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == "" {
		return "", false
	}
	if m.expired(token) {
		_ = m.Clear()
		return "", false
	}
	return token, true
}

func (m *Manager) Authenticated() bool {
	_, ok := m.Token()
	return ok
}

func (m *Manager) Clear() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()

	if m.persistent != nil {
		return m.persistent.Clear()
	}
	return nil
}

// Client returns an http.Client whose transport attaches the session token
// and reacts to 401 responses.
func (m *Manager) Client(base http.RoundTripper) *http.Client {
	return &http.Client{Transport: &transport{base: base, manager: m}}
}

func (m *Manager) handleUnauthorized() {
	_ = m.Clear()

	m.mu.RLock()
	fn := m.onUnauthorized
	m.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// expired decodes the exp claim without verifying the signature; the server
// remains the authority, this only avoids pointless round trips.
func (m *Manager) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !m.now().Before(exp.Time)
}

type transport struct {
	base    http.RoundTripper
	manager *Manager
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.manager.Token(); ok {
		// Clone before mutating; RoundTrippers must not modify the
		// caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.manager.handleUnauthorized()
	}
	return resp, nil
}

var _ http.RoundTripper = (*transport)(nil)
