package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"referral-platform/internal/model"
)

const testSecret = "test-secret"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	svc, err := NewTokenService(testSecret, 168*time.Hour, 720*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("", time.Hour, time.Hour)
	require.Error(t, err)
}

func TestTokenIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	token, err := svc.Issue("user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
	require.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestTokenVerifyFailures(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.Issue("user-123", -time.Second)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other, err := NewTokenService("another-secret", time.Hour, time.Hour)
		require.NoError(t, err)

		token, err := other.Issue("user-123", time.Hour)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Verify("")
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestSessionTTLPresets(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	require.Equal(t, 168*time.Hour, svc.SessionTTL(false))
	require.Equal(t, 720*time.Hour, svc.SessionTTL(true))
	require.Greater(t, svc.SessionTTL(true), svc.SessionTTL(false))
}

func TestRememberMeYieldsLongerValidity(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	short, err := svc.Issue("user-123", svc.SessionTTL(false))
	require.NoError(t, err)
	long, err := svc.Issue("user-123", svc.SessionTTL(true))
	require.NoError(t, err)

	shortClaims, err := svc.Verify(short)
	require.NoError(t, err)
	longClaims, err := svc.Verify(long)
	require.NoError(t, err)

	require.True(t, longClaims.ExpiresAt.After(shortClaims.ExpiresAt))
}
