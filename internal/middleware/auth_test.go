package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"referral-platform/internal/model"
)

type stubVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubVerifier) Verify(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

type stubResolver struct {
	user model.UserProfile
	err  error
}

func (s *stubResolver) VerifyUser(context.Context, string) (model.UserProfile, error) {
	return s.user, s.err
}

func decodeGateBody(t *testing.T, rec *httptest.ResponseRecorder) model.VerifyResponse {
	t.Helper()

	var body model.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "user-123", claims.UserID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "user-123"}}, nil)

		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/verify", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeGateBody(t, rec)
		require.False(t, body.Valid)
		require.Equal(t, "No token provided", body.Message)
	})

	t.Run("rejects a header without a bearer prefix", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "user-123"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "No token provided", decodeGateBody(t, rec).Message)
	})

	t.Run("rejects a token that fails verification", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{err: model.ErrTokenInvalid}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeGateBody(t, rec)
		require.False(t, body.Valid)
		require.Equal(t, "Invalid token", body.Message)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{err: model.ErrTokenExpired}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes claims through the context on success", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "user-123"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withClaims := func(req *http.Request) *http.Request {
		ctx := context.WithValue(req.Context(), authClaimsContextKey, &model.AuthClaims{UserID: "user-123"})
		return req.WithContext(ctx)
	}

	t.Run("rejects a non-admin user", func(t *testing.T) {
		mw := NewAuthMiddleware(nil, &stubResolver{user: model.UserProfile{Role: model.RoleUser}})

		rec := httptest.NewRecorder()
		mw.RequireAdmin(next).ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, "/admin/users", nil)))

		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects when the user no longer exists", func(t *testing.T) {
		mw := NewAuthMiddleware(nil, &stubResolver{err: model.ErrTokenInvalid})

		rec := httptest.NewRecorder()
		mw.RequireAdmin(next).ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, "/admin/users", nil)))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects when no claims are present", func(t *testing.T) {
		mw := NewAuthMiddleware(nil, &stubResolver{user: model.UserProfile{Role: model.RoleAdmin}})

		rec := httptest.NewRecorder()
		mw.RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("allows an admin", func(t *testing.T) {
		mw := NewAuthMiddleware(nil, &stubResolver{user: model.UserProfile{Role: model.RoleAdmin}})

		rec := httptest.NewRecorder()
		mw.RequireAdmin(next).ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, "/admin/users", nil)))

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
