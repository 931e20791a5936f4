package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerRes *service.AuthResult
	registerErr error
	loginRes    *service.AuthResult
	loginErr    error
	claims      *service.Claims
	parseErr    error
	me          *models.PublicUser
	meErr       error

	lastRegister   service.RegisterInput
	lastLogin      service.LoginInput
	lastParseToken string
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	m.lastRegister = in
	return m.registerRes, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, in service.LoginInput) (*service.AuthResult, error) {
	m.lastLogin = in
	return m.loginRes, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (*service.Claims, error) {
	m.lastParseToken = token
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	return m.claims, nil
}

func (m *mockAuth) Me(context.Context, string) (*models.PublicUser, error) {
	return m.me, m.meErr
}

func (m *mockAuth) CreateAdmin(context.Context, service.RegisterInput) (*models.PublicUser, error) {
	return m.me, m.meErr
}

type mockProjects struct {
	approved   []models.Project
	all        []models.Project
	project    *models.Project
	err        error
	lastCreate service.CreateProjectInput
	lastStatus string
}

func (m *mockProjects) Create(_ context.Context, in service.CreateProjectInput) (*models.Project, error) {
	m.lastCreate = in
	if m.err != nil {
		return nil, m.err
	}
	return &models.Project{ID: "p-new", UserID: in.OwnerID, Title: in.Title, Tags: in.Tags, Status: models.StatusPending}, nil
}

func (m *mockProjects) ListApproved(context.Context) ([]models.Project, error) {
	return m.approved, m.err
}

func (m *mockProjects) ListAll(_ context.Context, status string) ([]models.Project, error) {
	m.lastStatus = status
	return m.all, m.err
}

func (m *mockProjects) Get(context.Context, string) (*models.Project, error) {
	return m.project, m.err
}

func (m *mockProjects) SeedSample(context.Context) (bool, error) {
	return false, m.err
}

type mockComments struct {
	list    []models.Comment
	err     error
	lastAdd service.AddCommentInput
}

func (m *mockComments) Add(_ context.Context, in service.AddCommentInput) (*models.Comment, error) {
	m.lastAdd = in
	if m.err != nil {
		return nil, m.err
	}
	return &models.Comment{ID: "c-1", ProjectID: in.ProjectID, UserID: in.AuthorID, Content: in.Content}, nil
}

func (m *mockComments) ListForProject(context.Context, string) ([]models.Comment, error) {
	return m.list, m.err
}

type mockModeration struct {
	err  error
	last service.ModerationInput
}

func (m *mockModeration) SetStatus(_ context.Context, in service.ModerationInput) (*models.Project, error) {
	m.last = in
	if m.err != nil {
		return nil, m.err
	}
	return &models.Project{ID: in.ProjectID, Status: models.ProjectStatus(in.Status)}, nil
}

func (m *mockModeration) Approve(ctx context.Context, id, requesterID string, role models.Role) (*models.Project, error) {
	return m.SetStatus(ctx, service.ModerationInput{ProjectID: id, Status: "approved", RequesterID: requesterID, RequesterRole: role})
}

func (m *mockModeration) Reject(ctx context.Context, id, requesterID string, role models.Role) (*models.Project, error) {
	return m.SetStatus(ctx, service.ModerationInput{ProjectID: id, Status: "rejected", RequesterID: requesterID, RequesterRole: role})
}

type mockEventLog struct {
	resp     []models.AuditEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.AuditEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockStats struct {
	stats models.ProjectStats
	queue service.ModerationQueue
	err   error
}

func (m *mockStats) GetStats(context.Context) (models.ProjectStats, error) {
	return m.stats, m.err
}

func (m *mockStats) Queue(context.Context) (service.ModerationQueue, error) {
	return m.queue, m.err
}

func (m *mockStats) Run(context.Context, time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// adminAuth and userAuth accept any token and report the given role.
func adminAuth() *mockAuth {
	return &mockAuth{claims: &service.Claims{UserID: "admin-1", Username: "admin", Role: models.RoleAdmin}}
}

func userAuth() *mockAuth {
	return &mockAuth{claims: &service.Claims{UserID: "user-1", Username: "alice", Role: models.RoleUser}}
}

func doRequest(r http.Handler, method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out.Error
}
