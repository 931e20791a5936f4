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

func TestTagList_AcceptsArrayOrCommaString(t *testing.T) {
	var req CreateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tags":["iot","home"]}`), &req))
	assert.Equal(t, tagList{"iot", "home"}, req.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":"iot, home"}`), &req))
	assert.Equal(t, tagList{"iot", " home"}, req.Tags)

	assert.Error(t, json.Unmarshal([]byte(`{"tags":42}`), &req))
}

func TestProjects_PublicRoutes(t *testing.T) {
	projects := &mockProjects{
		approved: []models.Project{{ID: "p1", Title: "A", Status: models.StatusApproved}},
		project:  &models.Project{ID: "p1", Title: "A"},
	}
	comments := &mockComments{list: []models.Comment{}}
	r := newTestRouter(&service.Service{Projects: projects, Comments: comments})

	w := doRequest(r, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doRequest(r, http.MethodGet, "/projects/p1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/projects/p1/comments", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProjects_GetUnknownIs404(t *testing.T) {
	r := newTestRouter(&service.Service{Projects: &mockProjects{err: models.NewNotFoundError("project", "x")}})

	w := doRequest(r, http.MethodGet, "/api/projects/x", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `project "x" not found`, errorBody(t, w))
}

func TestProjects_CreateRequiresAuthAndPassesOwner(t *testing.T) {
	projects := &mockProjects{}
	r := newTestRouter(&service.Service{Authorization: userAuth(), Projects: projects})

	body := `{"title":"T","description":"D","category":"C","tags":"a,b","video_link":"https://v"}`
	w := doRequest(r, http.MethodPost, "/api/projects", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/api/projects", body, authHeader("t"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "user-1", projects.lastCreate.OwnerID)
	assert.Equal(t, []string{"a", "b"}, projects.lastCreate.Tags)
	assert.Equal(t, "https://v", projects.lastCreate.VideoLink)
}

func TestProjects_CreateValidationIs400(t *testing.T) {
	r := newTestRouter(&service.Service{
		Authorization: userAuth(),
		Projects:      &mockProjects{err: models.NewValidationError("title, description and category are required")},
	})

	w := doRequest(r, http.MethodPost, "/api/projects", `{"title":""}`, authHeader("t"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComments_AddAcceptsBothProjectIDKeys(t *testing.T) {
	comments := &mockComments{}
	r := newTestRouter(&service.Service{Authorization: userAuth(), Comments: comments})

	w := doRequest(r, http.MethodPost, "/api/comments", `{"projectId":"p1","content":"hi"}`, authHeader("t"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "p1", comments.lastAdd.ProjectID)
	assert.Equal(t, "user-1", comments.lastAdd.AuthorID)

	w = doRequest(r, http.MethodPost, "/comments", `{"project_id":"p2","content":"hi"}`, authHeader("t"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "p2", comments.lastAdd.ProjectID)
}

func TestProjects_StorageErrorIsGeneric500(t *testing.T) {
	r := newTestRouter(&service.Service{Projects: &mockProjects{err: models.NewStorageError("list projects", assert.AnError)}})

	w := doRequest(r, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errInternal, errorBody(t, w))
}
