package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"filevault/internal/auth"

	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "alice", "secret123")

	t.Run("missing header", func(t *testing.T) {
		rr := env.do(httptest.NewRequest(http.MethodGet, "/api/files", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Authorization header required", decodeError(t, rr))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		req.Header.Set("Authorization", "Basic "+token)
		rr := env.do(req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Invalid Authorization header format", decodeError(t, rr))
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		req.Header.Set("Authorization", "bearer "+token)
		rr := env.do(req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/files", nil), "not.a.token"))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, invalidTokenMessage, decodeError(t, rr))
	})

	t.Run("token signed with another key", func(t *testing.T) {
		forged, err := auth.NewJWTCodec("some-other-secret", time.Hour, auth.WithIssuer(testIssuer)).Issue("alice")
		require.NoError(t, err)

		rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/files", nil), forged))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, invalidTokenMessage, decodeError(t, rr))
	})

	t.Run("expired token", func(t *testing.T) {
		past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
		expired, err := auth.NewJWTCodec(testSecret, time.Hour, auth.WithIssuer(testIssuer), auth.WithClock(past)).Issue("alice")
		require.NoError(t, err)

		rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/files", nil), expired))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, invalidTokenMessage, decodeError(t, rr))
	})

	t.Run("valid token sets username", func(t *testing.T) {
		var seen string
		h := env.server.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetUsernameFromContext(r.Context())
		}))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, withToken(httptest.NewRequest(http.MethodGet, "/", nil), token))
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "alice", seen)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"Bearer ", "", false},
		{"Bearer", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		got, ok := bearerToken(req)
		require.Equal(t, tt.ok, ok, tt.header)
		require.Equal(t, tt.want, got, tt.header)
	}
}
