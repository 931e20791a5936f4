package handlers

import (
	"net/http"
	"strings"
	"testing"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository/filestore"
	"innovation_showcase/internal/service"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newIntegrationRouter(t *testing.T) http.Handler {
	t.Helper()
	repos, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	s := service.NewService(repos, service.Deps{
		Auth: service.AuthOptions{Secret: "integration", BcryptCost: bcrypt.MinCost, AllowAdminSignup: true},
	})
	return newTestRouter(s)
}

func registerToken(t *testing.T, r http.Handler, username, role string) string {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + username + `@example.com","password":"password","role":"` + role + `"}`
	w := doRequest(r, http.MethodPost, "/api/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res service.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token
}

func approvedTitles(t *testing.T, r http.Handler) []string {
	t.Helper()
	w := doRequest(r, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	titles := make([]string, 0, len(list))
	for _, p := range list {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestHTTP_SubmitApproveComment(t *testing.T) {
	r := newIntegrationRouter(t)

	alice := registerToken(t, r, "alice", "")
	admin := registerToken(t, r, "admin", "admin")

	w := doRequest(r, http.MethodPost, "/api/projects",
		`{"title":"Solar Tracker","description":"Follows the sun","category":"Energy","tags":"solar, iot"}`,
		authHeader(alice))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, models.StatusPending, p.Status)
	assert.Equal(t, []string{"solar", "iot"}, p.Tags)
	assert.Empty(t, approvedTitles(t, r))

	w = doRequest(r, http.MethodPut, "/api/admin/approve/"+p.ID, "", authHeader(alice))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPut, "/api/admin/approve/"+p.ID, "", authHeader(admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"Solar Tracker"}, approvedTitles(t, r))

	w = doRequest(r, http.MethodPost, "/api/comments", `{"projectId":"`+p.ID+`","content":"Great"}`, authHeader(alice))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/projects/"+p.ID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "Great", comments[0].Content)

	w = doRequest(r, http.MethodPut, "/api/admin/projects/"+p.ID+"/status", `{"status":"rejected"}`, authHeader(admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, approvedTitles(t, r))

	w = doRequest(r, http.MethodGet, "/api/admin/events?type=project_status_changed", "", authHeader(admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestHTTP_DuplicateRegistrationAndLogin(t *testing.T) {
	r := newIntegrationRouter(t)
	registerToken(t, r, "bob", "user")

	w := doRequest(r, http.MethodPost, "/api/register",
		`{"username":"bobby","email":"bob@example.com","password":"password"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email already exists", errorBody(t, w))

	w = doRequest(r, http.MethodPost, "/api/login", `{"username":"bob","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	wrong := errorBody(t, w)

	w = doRequest(r, http.MethodPost, "/api/login", `{"username":"nobody","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrong, errorBody(t, w))

	w = doRequest(r, http.MethodPost, "/api/login", `{"username":"bob","password":"password"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTP_UnknownProjectAndEmptyComments(t *testing.T) {
	r := newIntegrationRouter(t)

	w := doRequest(r, http.MethodGet, "/api/projects/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/api/projects/missing/comments", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHTTP_RegisterWithNameThenLogin(t *testing.T) {
	r := newIntegrationRouter(t)

	w := doRequest(r, http.MethodPost, "/register",
		`{"name":"carol","email":"carol@example.com","password":"secret1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(r, http.MethodPost, "/api/login", `{"username":"carol","password":"secret1"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHTTP_RegisterOverlongPasswordIsBadRequest(t *testing.T) {
	r := newIntegrationRouter(t)

	body := `{"username":"dave","email":"dave@example.com","password":"` + strings.Repeat("p", 80) + `"}`
	w := doRequest(r, http.MethodPost, "/api/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password must be at most 72 bytes", errorBody(t, w))
}
