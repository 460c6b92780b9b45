package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubarao/storefront/internal/service"
)

// A handler wired to an empty AuthService would panic on any service call, so
// these cases double as proof that validation rejects before the service runs.
func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHTTP{Svc: &service.AuthService{}}

	cases := []struct {
		name string
		body map[string]string
		want string
	}{
		{
			name: "short password",
			body: map[string]string{
				"email":            "ana@example.com",
				"password":         "abc",
				"confirm_password": "abc",
				"name":             "Ana",
			},
			want: "password must be at least 6 characters",
		},
		{
			name: "missing fields",
			body: map[string]string{"email": "ana@example.com"},
			want: "fill in all required fields",
		},
		{
			name: "mismatched passwords",
			body: map[string]string{
				"email":            "ana@example.com",
				"password":         "secret123",
				"confirm_password": "secret124",
				"name":             "Ana",
			},
			want: "passwords do not match",
		},
		{
			name: "bad email",
			body: map[string]string{
				"email":            "not-an-email",
				"password":         "secret123",
				"confirm_password": "secret123",
				"name":             "Ana",
			},
			want: "invalid email address",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", tc.body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, errorMessage(t, rec))
		})
	}
}

func TestRegisterSetsSessionCookies(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{
		"email":            "ana@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"name":             "Ana",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", body)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ana", resp.Name)
	assert.NotEmpty(t, resp.UserID)

	names := cookieNames(rec)
	assert.Contains(t, names, accessCookie)
	assert.Contains(t, names, refreshCookie)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "secret123", "Ana")

	body := map[string]string{
		"email":            "ana@example.com",
		"password":         "another1",
		"confirm_password": "another1",
		"name":             "Impostora",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", body)
	require.NoError(t, env.Auth.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "secret123", "Ana")

	t.Run("wrong password", func(t *testing.T) {
		body := map[string]string{"email": "ana@example.com", "password": "wrong"}
		rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", body)
		require.NoError(t, env.Auth.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid email or password", errorMessage(t, rec))
	})

	t.Run("unknown email", func(t *testing.T) {
		body := map[string]string{"email": "nobody@example.com", "password": "secret123"}
		rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", body)
		require.NoError(t, env.Auth.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty fields", func(t *testing.T) {
		rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{})
		require.NoError(t, env.Auth.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "fill in all required fields", errorMessage(t, rec))
	})

	t.Run("success", func(t *testing.T) {
		body := map[string]string{"email": "ana@example.com", "password": "secret123"}
		rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", body)
		require.NoError(t, env.Auth.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, cookieNames(rec), accessCookie)
	})
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{
		"email":            "ana@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"name":             "Ana",
	}
	regRec, regC := env.doJSONRequest(http.MethodPost, "/api/v1/register", body)
	require.NoError(t, env.Auth.Register(regC))
	oldRefresh := cookieByName(regRec, refreshCookie)
	require.NotNil(t, oldRefresh)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/refresh", nil, oldRefresh)
	require.NoError(t, env.Auth.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	newRefresh := cookieByName(rec, refreshCookie)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	// the rotated-out token must no longer work
	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/refresh", nil, oldRefresh)
	require.NoError(t, env.Auth.Refresh(c2))
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)

	// the fresh one must
	rec3, c3 := env.doJSONRequest(http.MethodPost, "/api/v1/refresh", nil, newRefresh)
	require.NoError(t, env.Auth.Refresh(c3))
	assert.Equal(t, http.StatusOK, rec3.Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
	env := newTestEnv(t)
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/refresh", nil)
	require.NoError(t, env.Auth.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesRefresh(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{
		"email":            "ana@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"name":             "Ana",
	}
	regRec, regC := env.doJSONRequest(http.MethodPost, "/api/v1/register", body)
	require.NoError(t, env.Auth.Register(regC))
	refresh := cookieByName(regRec, refreshCookie)
	require.NotNil(t, refresh)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil, refresh)
	require.NoError(t, env.Auth.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/refresh", nil, refresh)
	require.NoError(t, env.Auth.Refresh(c2))
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
}

func TestSessionEndpoint(t *testing.T) {
	env := newTestEnv(t)

	t.Run("anonymous", func(t *testing.T) {
		rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/session", nil)
		require.NoError(t, env.Auth.Session(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("signed in", func(t *testing.T) {
		sess := env.register("ana@example.com", "secret123", "Ana")
		rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/session", nil)
		c.Set(sessionKey, sess)
		require.NoError(t, env.Auth.Session(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Ana", resp.Name)
	})
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func cookieNames(rec *httptest.ResponseRecorder) []string {
	var names []string
	for _, ck := range rec.Result().Cookies() {
		names = append(names, ck.Name)
	}
	return names
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
