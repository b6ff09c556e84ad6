// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knguyen-dev/account-service/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s *stubVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

func okHandler(t *testing.T, sawRequest *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawRequest = true
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) core.Envelope {
	t.Helper()
	var env core.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAuthenticatorMissingToken(t *testing.T) {
	var reached bool
	handler := Authenticator(&stubVerifier{})(okHandler(t, &reached))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/profile", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "missing authorization token", env.Message)
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	var reached bool
	verifier := &stubVerifier{err: core.ErrTokenExpired}
	handler := Authenticator(verifier)(okHandler(t, &reached))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
	assert.Equal(t, "token has expired", decodeEnvelope(t, rec).Message)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	var reached bool
	verifier := &stubVerifier{err: core.ErrTokenInvalid}
	handler := Authenticator(verifier)(okHandler(t, &reached))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
	assert.Equal(t, "invalid token", decodeEnvelope(t, rec).Message)
}

func TestAuthenticatorAttachesClaims(t *testing.T) {
	verifier := &stubVerifier{
		claims: &AccessTokenClaims{UserID: 42, Role: "admin"},
	}

	var gotID int64
	var gotRole string
	handler := Authenticator(verifier)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = GetUserID(r.Context())
			gotRole = GetUserRole(r.Context())
		}),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, "admin", gotRole)
}

func TestRequireAdmin(t *testing.T) {
	var reached bool
	handler := RequireAdmin(okHandler(t, &reached))

	// No role in context means no authenticated user.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	// Authenticated but not admin.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users", nil)
	ctx := context.WithValue(req.Context(), UserRoleKey, "user")
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Admin passes through.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/users", nil)
	ctx = context.WithValue(req.Context(), UserRoleKey, "admin")
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"case-insensitive scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}

func TestRequestID(t *testing.T) {
	var captured string
	handler := RequestID(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = GetRequestID(r.Context())
		}),
	)

	// Inbound id is reused.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", captured)
	assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))

	// Absent id gets minted and echoed back.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, rec.Header().Get("X-Request-ID"))
}
