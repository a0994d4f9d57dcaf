package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-store/internal/auth"
	"project-store/internal/idgen"
	"project-store/internal/models"
	"project-store/internal/projectmap"
	"project-store/internal/repository/memory"
	"project-store/internal/service"
	"project-store/internal/ws"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub(nil)
	go hub.Run(ctx)

	projects := service.NewProjectService(memory.NewProjectRepository(), projectmap.NewFlattener(idgen.UUID), hub, nil)
	users := service.NewUserService(memory.NewUserRepository(), tokens, nil)

	return &testServer{t: t, handler: NewRouter(RouterConfig{
		Tokens:   tokens,
		Users:    users,
		Projects: projects,
		Hub:      hub,
	})}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns a bearer token for them.
func (s *testServer) signup(name string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"`+name+`","email":"`+name+`@example.com","password":"correct-horse"}`)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"`+name+`@example.com","password":"correct-horse"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func (s *testServer) createProject(token, body string) models.ProjectSummary {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/projects", token, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var summary models.ProjectSummary
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &summary))
	return summary
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.signup("ada")

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"ada@example.com","password":"nope-nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestCreateProjectReturnsSummaryOnly(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("ada")

	rec := s.do(http.MethodPost, "/api/v1/projects", token,
		`{"name":"Site","slug":"site","files":{"index.html":{"content":"<h1>hi</h1>"}}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
	assert.Equal(t, "Site", body["name"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateProjectMissingContentSource(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("ada")

	rec := s.do(http.MethodPost, "/api/v1/projects", token,
		`{"name":"Site","slug":"site","files":{"src":{"files":{"broken.js":{}}}}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "src/broken.js", problem["path"])
	assert.Contains(t, problem["detail"], "url or params must be supplied")
}

func TestCreateProjectRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/v1/projects", "", `{"name":"Site","slug":"site"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProjectDuplicateSlug(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("ada")
	s.createProject(token, `{"name":"Site","slug":"site"}`)

	rec := s.do(http.MethodPost, "/api/v1/projects", token, `{"name":"Other","slug":"site"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProjectFilesRoundTrip(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("ada")
	project := s.createProject(token,
		`{"name":"Site","slug":"site","files":{"a.txt":{"content":"A"},"lib":{"files":{"b.js":{"url":"https://cdn/b.js"}}}}}`)

	rec := s.do(http.MethodGet, "/api/v1/projects/"+project.ID+"/files", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var nodes []models.FileNode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nodes))
	require.Len(t, nodes, 4)
	assert.Equal(t, projectmap.RootName, nodes[0].Name)
	assert.Equal(t, []string{nodes[1].ID, nodes[2].ID}, nodes[0].Children)
	assert.Equal(t, "a.txt", nodes[1].Name)
	assert.Equal(t, "lib", nodes[2].Name)
	assert.Equal(t, []string{nodes[3].ID}, nodes[2].Children)
	require.NotNil(t, nodes[3].URL)
	assert.Equal(t, "https://cdn/b.js", *nodes[3].URL)

	rec = s.do(http.MethodPut, "/api/v1/projects/"+project.ID+"/files", token, `{"only.txt":{"content":"x"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/projects/"+project.ID+"/files", token, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "only.txt", nodes[1].Name)

	rec = s.do(http.MethodPut, "/api/v1/projects/"+project.ID+"/files", token, `["not","an","object"]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectRoutesRequireOwner(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	project := s.createProject(alice, `{"name":"Private","slug":"private"}`)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/projects/" + project.ID, ""},
		{http.MethodGet, "/api/v1/projects/" + project.ID + "/files", ""},
		{http.MethodPut, "/api/v1/projects/" + project.ID + "/rename", `{"name":"Mine"}`},
		{http.MethodDelete, "/api/v1/projects/" + project.ID, ""},
	} {
		rec := s.do(tc.method, tc.path, bob, tc.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
	}

	rec := s.do(http.MethodGet, "/api/v1/projects", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRenameAndDeleteProject(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("ada")
	project := s.createProject(token, `{"name":"Old","slug":"site"}`)

	rec := s.do(http.MethodPut, "/api/v1/projects/"+project.ID+"/rename", token, `{"name":"New"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+project.ID+`","name":"New"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/projects", token, "")
	assert.JSONEq(t, `[{"id":"`+project.ID+`","name":"New"}]`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/api/v1/projects/"+project.ID, token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/projects/"+project.ID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebsocketReceivesFileEvents(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	token := s.signup("ada")
	project := s.createProject(token, `{"name":"Site","slug":"site"}`)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/projects/" + project.ID

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?auth_token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration is asynchronous; keep replacing until the event arrives.
	got := make(chan ws.WsMessage, 1)
	go func() {
		var msg ws.WsMessage
		if err := conn.ReadJSON(&msg); err == nil {
			got <- msg
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/projects/"+project.ID+"/files",
			bytes.NewBufferString(`{"a.txt":{"content":"A"}}`))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		select {
		case msg := <-got:
			assert.Equal(t, ws.EventFilesReplaced, msg.Type)
			assert.Equal(t, project.ID, msg.ProjectID)
			assert.JSONEq(t, `{"nodes":2}`, string(msg.Payload))
			return
		case <-deadline:
			t.Fatal("no websocket event received")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
