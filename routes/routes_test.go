package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teamhub/config"
	controller "teamhub/controllers"
	"teamhub/models"
	"teamhub/repository"
	"teamhub/services"
	"teamhub/utils"
)

type testServer struct {
	t      *testing.T
	app    *fiber.App
	db     *gorm.DB
	repos  *repository.Repositories
	tokens *utils.TokenService
	hub    *services.ActivityHub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := config.ConnectDB(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	tokens, err := utils.NewTokenService("test-secret", utils.DefaultTokenTTL)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:        "test",
		JWTSecret:          "test-secret",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	hub := services.NewActivityHub(0)
	repos := repository.New(db)

	app := NewApp(Dependencies{
		Config: cfg,
		DB:     db,
		Log:    log,
		Tokens: tokens,
		Hub:    hub,
		Repos:  repos,
	})

	return &testServer{t: t, app: app, db: db, repos: repos, tokens: tokens, hub: hub}
}

// do sends a JSON request and returns the status and raw body
func (s *testServer) do(method, path, token string, body interface{}) (int, []byte) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, out
}

// expect sends a request, asserts the status and decodes the body into out
func (s *testServer) expect(status int, method, path, token string, body, out interface{}) {
	s.t.Helper()
	got, raw := s.do(method, path, token, body)
	require.Equal(s.t, status, got, "%s %s: %s", method, path, raw)
	if out != nil {
		require.NoError(s.t, json.Unmarshal(raw, out), string(raw))
	}
}

func (s *testServer) signup(name, email, password string) controller.AuthResponse {
	s.t.Helper()
	var resp controller.AuthResponse
	s.expect(fiber.StatusCreated, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name": name, "email": email, "password": password,
	}, &resp)
	require.NotEmpty(s.t, resp.Token)
	require.NotNil(s.t, resp.User)
	return resp
}

func (s *testServer) createTeam(token, name string) models.Team {
	s.t.Helper()
	var team models.Team
	s.expect(fiber.StatusCreated, fiber.MethodPost, "/api/teams", token, fiber.Map{"name": name}, &team)
	return team
}

func (s *testServer) createProject(token, name string, teamID uint) models.Project {
	s.t.Helper()
	var project models.Project
	s.expect(fiber.StatusCreated, fiber.MethodPost, "/api/projects", token, fiber.Map{
		"name": name, "team": teamID,
	}, &project)
	return project
}

func (s *testServer) createTask(token, title string, projectID uint) models.Task {
	s.t.Helper()
	var task models.Task
	s.expect(fiber.StatusCreated, fiber.MethodPost, "/api/tasks", token, fiber.Map{
		"title": title, "project": projectID,
	}, &task)
	return task
}

func (s *testServer) createComment(token, text string, taskID uint) models.Comment {
	s.t.Helper()
	var comment models.Comment
	s.expect(fiber.StatusCreated, fiber.MethodPost, "/api/comments", token, fiber.Map{
		"text": text, "task": taskID,
	}, &comment)
	return comment
}

// addMember joins userID to teamID as a plain member
func (s *testServer) addMember(teamID, userID uint) {
	s.t.Helper()
	require.NoError(s.t, s.db.Create(&models.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   models.TeamRoleMember,
	}).Error)
}

func (s *testServer) count(model interface{}) int64 {
	s.t.Helper()
	var n int64
	require.NoError(s.t, s.db.Model(model).Count(&n).Error)
	return n
}

func errorBody(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body.Error
}
