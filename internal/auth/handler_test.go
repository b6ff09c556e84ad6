// AngelaMos | 2026
// handler_test.go

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knguyen-dev/account-service/internal/core"
	"github.com/knguyen-dev/account-service/internal/middleware"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fakeUserProvider) {
	t.Helper()

	users := newFakeUserProvider()
	jwtManager := newTestManager(t, testJWTConfig())
	handler := NewHandler(NewService(users, jwtManager))

	router := chi.NewRouter()
	handler.RegisterRoutes(router, middleware.Authenticator(jwtManager))
	return router, users
}

func doJSON(
	t *testing.T,
	router http.Handler,
	method, path, token string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func parseEnvelope(t *testing.T, rec *httptest.ResponseRecorder) core.Envelope {
	t.Helper()
	var env core.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func registerBody() map[string]any {
	return map[string]any{
		"name":     "Nguyen Van A",
		"gmail":    "nguyen@example.com",
		"password": "password1",
		"sdt":      "0912345678",
	}
}

func registerAndLogin(
	t *testing.T,
	router http.Handler,
) (userID int64, access, refresh string) {
	t.Helper()

	rec := doJSON(t, router, "POST", "/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data.User.ID, resp.Data.Tokens.Access, resp.Data.Tokens.Refresh
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	env := parseEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "registration successful", env.Message)

	// No trace of the password in the response.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	body := map[string]any{
		"name":     "a",
		"gmail":    "not-an-email",
		"password": "short",
		"sdt":      "12ab",
	}
	rec := doJSON(t, router, "POST", "/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := parseEnvelope(t, rec)
	assert.False(t, env.Success)
	require.NotEmpty(t, env.Errors)

	fields := make(map[string]bool, len(env.Errors))
	for _, fe := range env.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["gmail"])
	assert.True(t, fields["password"])
	assert.True(t, fields["sdt"])
}

func TestRegisterDuplicateEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router)

	rec := doJSON(t, router, "POST", "/auth/register", "", registerBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(
		t,
		"email or phone number already exists",
		parseEnvelope(t, rec).Message,
	)
}

func TestRegisterDuplicateNameEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router)

	body := registerBody()
	body["gmail"] = "other@example.com"
	body["sdt"] = "0987654321"

	rec := doJSON(t, router, "POST", "/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name already exists", parseEnvelope(t, rec).Message)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router)

	rec := doJSON(t, router, "POST", "/auth/login", "", map[string]any{
		"gmail":    "nguyen@example.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "login successful", parseEnvelope(t, rec).Message)

	rec = doJSON(t, router, "POST", "/auth/login", "", map[string]any{
		"gmail":    "nguyen@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", parseEnvelope(t, rec).Message)
}

func TestRefreshEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	_, _, refresh := registerAndLogin(t, router)

	rec := doJSON(t, router, "POST", "/auth/refresh", "", map[string]any{
		"refreshToken": refresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	env := parseEnvelope(t, rec)
	assert.Equal(t, "token refreshed", env.Message)

	rec = doJSON(t, router, "POST", "/auth/refresh", "", map[string]any{
		"refreshToken": "garbage.token.here",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid token", parseEnvelope(t, rec).Message)
}

func TestProfileEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	_, access, _ := registerAndLogin(t, router)

	// No token at all.
	rec := doJSON(t, router, "GET", "/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "GET", "/auth/profile", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "nguyen@example.com", resp.Data.Gmail)
	assert.Equal(t, "0912345678", resp.Data.Phone)

	rec = doJSON(t, router, "PUT", "/auth/profile", access, map[string]any{
		"name": "Renamed User",
		"age":  28,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"profile updated successfully",
		parseEnvelope(t, rec).Message,
	)
}

func TestChangePasswordEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	_, access, _ := registerAndLogin(t, router)

	rec := doJSON(
		t, router, "PUT", "/auth/change-password", access,
		map[string]any{
			"currentPassword": "wrong",
			"newPassword":     "newpass1",
		},
	)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(
		t,
		"current password is incorrect",
		parseEnvelope(t, rec).Message,
	)

	rec = doJSON(
		t, router, "PUT", "/auth/change-password", access,
		map[string]any{
			"currentPassword": "password1",
			"newPassword":     "newpass1",
		},
	)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"password changed successfully",
		parseEnvelope(t, rec).Message,
	)
}

func TestResetPasswordEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router)

	rec := doJSON(t, router, "POST", "/auth/reset-password", "", map[string]any{
		"gmail":       "nobody@example.com",
		"newPassword": "newpass1",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, "POST", "/auth/reset-password", "", map[string]any{
		"gmail":       "nguyen@example.com",
		"newPassword": "newpass1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "password has been updated", parseEnvelope(t, rec).Message)
}

func TestLogoutEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	_, access, _ := registerAndLogin(t, router)

	rec := doJSON(t, router, "POST", "/auth/logout", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "POST", "/auth/logout", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logged out successfully", parseEnvelope(t, rec).Message)
}
