package handlers

import (
	"net/http"
	"testing"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/service"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandlers_RegisterAndLogin(t *testing.T) {
	user := models.PublicUser{ID: "u1", Username: "alice", Email: "a@x.io", Role: models.RoleUser}
	auth := &mockAuth{
		registerRes: &service.AuthResult{Token: "tok-reg", User: user},
		loginRes:    &service.AuthResult{Token: "tok-login", User: user},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodPost, "/api/register",
		`{"username":"alice","email":"a@x.io","password":"secret1","role":"user"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res service.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "tok-reg", res.Token)
	assert.Equal(t, user, res.User)
	assert.Equal(t, "a@x.io", auth.lastRegister.Email)
	assert.NotContains(t, w.Body.String(), "password")

	// same routes without the /api prefix
	w = doRequest(r, http.MethodPost, "/login", `{"email":"a@x.io","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "tok-login", res.Token)
	assert.Equal(t, "a@x.io", auth.lastLogin.Email)

	w = doRequest(r, http.MethodPost, "/api/login", `{"username":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_RegisterAcceptsName(t *testing.T) {
	auth := &mockAuth{registerRes: &service.AuthResult{Token: "tok"}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodPost, "/register",
		`{"name":"alice","email":"a@x.com","password":"secret1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "alice", auth.lastRegister.Username)

	// username wins when both are sent
	w = doRequest(r, http.MethodPost, "/register",
		`{"username":"bob","name":"alice","email":"b@x.com","password":"secret1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "bob", auth.lastRegister.Username)
}

func TestAuthHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"conflict", models.NewConflictError("email already exists"), http.StatusBadRequest, "email already exists"},
		{"validation", models.NewValidationError("email is invalid"), http.StatusBadRequest, "email is invalid"},
		{"forbidden", models.NewForbiddenError("admin signup is disabled"), http.StatusForbidden, "admin signup is disabled"},
		{"storage", models.NewStorageError("create user", assert.AnError), http.StatusInternalServerError, errInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: &mockAuth{registerErr: tc.err}})
			w := doRequest(r, http.MethodPost, "/api/register", `{"username":"a","email":"a@x.io","password":"secret1"}`, nil)
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, tc.msg, errorBody(t, w))
		})
	}
}

func TestAuthHandlers_LoginInvalidCredentials(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{loginErr: models.NewAuthError("invalid credentials")}})

	w := doRequest(r, http.MethodPost, "/api/login", `{"username":"a","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", errorBody(t, w))
}

func TestAuthHandlers_Me(t *testing.T) {
	auth := userAuth()
	auth.me = &models.PublicUser{ID: "user-1", Username: "alice", Role: models.RoleUser}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodGet, "/api/me", "", authHeader("t"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	w = doRequest(r, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	for _, path := range []string{"/health", "/api/health"} {
		w := doRequest(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	}
}
