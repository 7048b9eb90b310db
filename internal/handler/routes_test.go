// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelabotelho/portfolio-go/internal/cache"
	"github.com/rafaelabotelho/portfolio-go/internal/i18n"
	"github.com/rafaelabotelho/portfolio-go/internal/session"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
	"github.com/rafaelabotelho/portfolio-go/internal/version"
)

const (
	testAdminEmail    = "owner@example.com"
	testAdminPassword = "admin-password-123"
	testUserPassword  = "user-password-456"
)

// newTestServer builds a full router over the memory backend with a
// provisioned admin account.
func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	require.NoError(t, i18n.Init(slog.Default()))

	st := store.NewMemoryStore()
	require.NoError(t, store.EnsureAdmin(context.Background(), st, testAdminEmail, testAdminPassword))

	listCache := cache.NewMemoryCache(time.Minute, 64)
	t.Cleanup(func() { listCache.Close() })

	h := New(st, session.NewMemory(true), listCache, time.Minute, nil, &version.Info{Version: "test"})
	srv := httptest.NewServer(Routes(h, st, RouterOptions{}))
	t.Cleanup(srv.Close)

	return srv, st
}

// newTestClient returns an HTTP client with a cookie jar, so the
// session cookie survives across requests.
func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) UserResponse {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[UserResponse](t, resp)
}

func registerUser(t *testing.T, client *http.Client, baseURL, email string) UserResponse {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/register", RegisterRequest{
		Email:     email,
		Password:  testUserPassword,
		FirstName: "Visiting",
		LastName:  "Reader",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[UserResponse](t, resp)
}

func createProject(t *testing.T, admin *http.Client, baseURL, title string) ProjectEntityResponse {
	t.Helper()
	resp := doJSON(t, admin, http.MethodPost, baseURL+"/api/projects", CreateProjectRequest{
		Title:        title,
		Description:  "About " + title,
		Image:        "/img/" + title + ".png",
		Category:     "web",
		Technologies: []string{"go"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[ProjectEntityResponse](t, resp)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health := decodeBody[HealthResponse](t, resp)

	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Database)
	assert.Equal(t, "test", health.Version)
}

func TestAuthFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newTestClient(t)

	// Anonymous current-user is a 401.
	resp, err := client.Get(srv.URL + "/api/auth/user")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	user := registerUser(t, client, srv.URL, "reader@example.com")
	assert.Equal(t, "reader@example.com", user.Email)
	assert.Equal(t, "user", user.Role)

	// The session cookie authenticates the next request.
	resp, err = client.Get(srv.URL + "/api/auth/user")
	require.NoError(t, err)
	current := decodeBody[UserResponse](t, resp)
	assert.Equal(t, user.ID, current.ID)

	// Logout answers in Portuguese and kills the session.
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/logout", nil)
	msg := decodeBody[MessageResponse](t, resp)
	assert.Equal(t, "Sessão encerrada com sucesso", msg.Message)

	resp, err = client.Get(srv.URL + "/api/auth/user")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login", LoginRequest{
		Email:    testAdminEmail,
		Password: "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "Credenciais inválidas", body.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, newTestClient(t), srv.URL, "dup@example.com")

	resp := doJSON(t, newTestClient(t), http.MethodPost, srv.URL+"/api/auth/register", RegisterRequest{
		Email:    "dup@example.com",
		Password: testUserPassword,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "Email já cadastrado", body.Message)
}

func TestRegisterValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, newTestClient(t), http.MethodPost, srv.URL+"/api/auth/register", RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "Dados inválidos", body.Message)
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "password")
}

func TestProjectCRUDRequiresAdmin(t *testing.T) {
	srv, _ := newTestServer(t)

	// Anonymous create is a 401.
	resp := doJSON(t, newTestClient(t), http.MethodPost, srv.URL+"/api/projects", CreateProjectRequest{
		Title: "x", Description: "y", Image: "z", Category: "web",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// A regular user gets a 403.
	user := newTestClient(t)
	registerUser(t, user, srv.URL, "regular@example.com")
	resp = doJSON(t, user, http.MethodPost, srv.URL+"/api/projects", CreateProjectRequest{
		Title: "x", Description: "y", Image: "z", Category: "web",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestProjectLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)

	project := createProject(t, admin, srv.URL, "portfolio-site")
	assert.Equal(t, "published", project.Status)
	assert.NotEmpty(t, project.ID)

	// Partial update touches only the sent fields.
	newTitle := "portfolio-site-v2"
	resp := doJSON(t, admin, http.MethodPut, srv.URL+"/api/projects/"+project.ID, UpdateProjectRequest{
		Title: &newTitle,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[ProjectEntityResponse](t, resp)
	assert.Equal(t, "portfolio-site-v2", updated.Title)
	assert.Equal(t, project.Category, updated.Category)

	// Everyone sees it in the list.
	resp, err := http.Get(srv.URL + "/api/projects")
	require.NoError(t, err)
	list := decodeBody[[]ProjectResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "portfolio-site-v2", list[0].Title)

	// Delete answers with the Portuguese confirmation.
	resp = doJSON(t, admin, http.MethodDelete, srv.URL+"/api/projects/"+project.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decodeBody[MessageResponse](t, resp)
	assert.Equal(t, "Projeto deletado com sucesso", msg.Message)

	// Deleting again is a 404.
	resp = doJSON(t, admin, http.MethodDelete, srv.URL+"/api/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProjectValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)

	resp := doJSON(t, admin, http.MethodPost, srv.URL+"/api/projects", CreateProjectRequest{
		Title: "only a title",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "Dados inválidos", body.Message)
	assert.Contains(t, body.Errors, "description")
	assert.Contains(t, body.Errors, "image")
	assert.Contains(t, body.Errors, "category")
}

func TestDraftVisibility(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)

	resp := doJSON(t, admin, http.MethodPost, srv.URL+"/api/projects", CreateProjectRequest{
		Title: "wip", Description: "not ready", Image: "/img/wip.png",
		Category: "web", Status: "draft",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Anonymous visitors don't see drafts.
	resp, err := http.Get(srv.URL + "/api/projects")
	require.NoError(t, err)
	assert.Empty(t, decodeBody[[]ProjectResponse](t, resp))

	// The admin does.
	resp, err = admin.Get(srv.URL + "/api/projects")
	require.NoError(t, err)
	assert.Len(t, decodeBody[[]ProjectResponse](t, resp), 1)
}

func TestLikeFlow(t *testing.T) {
	srv, st := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)
	project := createProject(t, admin, srv.URL, "likeable")

	// Anonymous likes are rejected.
	resp := doJSON(t, newTestClient(t), http.MethodPost, srv.URL+"/api/projects/"+project.ID+"/like", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	user := newTestClient(t)
	registerUser(t, user, srv.URL, "fan@example.com")

	resp = doJSON(t, user, http.MethodPost, srv.URL+"/api/projects/"+project.ID+"/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeBody[LikeResponse](t, resp).Liked)

	// The list reflects the like for this viewer.
	resp, err := user.Get(srv.URL + "/api/projects")
	require.NoError(t, err)
	list := decodeBody[[]ProjectResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].LikesCount)
	assert.True(t, list[0].UserLiked)

	// Toggling again removes the like.
	resp = doJSON(t, user, http.MethodPost, srv.URL+"/api/projects/"+project.ID+"/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decodeBody[LikeResponse](t, resp).Liked)

	// The like generated a notification for the site owner.
	adminUser, err := st.GetAdmin(context.Background())
	require.NoError(t, err)
	notifications, err := st.ListNotifications(context.Background(), adminUser.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "like", notifications[0].Type)

	// Liking a missing project is a 404.
	resp = doJSON(t, user, http.MethodPost, srv.URL+"/api/projects/no-such-id/like", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCommentFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)
	project := createProject(t, admin, srv.URL, "commented")

	user := newTestClient(t)
	registerUser(t, user, srv.URL, "talker@example.com")

	// Markup is stripped on ingest.
	resp := doJSON(t, user, http.MethodPost, srv.URL+"/api/projects/"+project.ID+"/comments", CommentRequest{
		Content: `great work <script>alert("xss")</script>`,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	comment := decodeBody[CommentResponse](t, resp)
	assert.Equal(t, "great work", comment.Content)
	assert.Equal(t, "Visiting", comment.User.FirstName)

	// A comment that is empty after sanitization is invalid.
	resp = doJSON(t, user, http.MethodPost, srv.URL+"/api/projects/"+project.ID+"/comments", CommentRequest{
		Content: `<script>alert("only markup")</script>`,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody[ErrorResponse](t, resp).Errors, "content")

	// Comments are public to read.
	resp, err := http.Get(srv.URL + "/api/projects/" + project.ID + "/comments")
	require.NoError(t, err)
	comments := decodeBody[[]CommentResponse](t, resp)
	require.Len(t, comments, 1)
	assert.Equal(t, "great work", comments[0].Content)
}

func TestContactScenario(t *testing.T) {
	srv, _ := newTestServer(t)

	// Invalid submission lists every failing field.
	resp := doJSON(t, newTestClient(t), http.MethodPost, srv.URL+"/api/contact", ContactRequest{
		Name: "Visitor",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "Dados inválidos", body.Message)
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "subject")
	assert.Contains(t, body.Errors, "message")

	// Valid submission returns 200 with the Portuguese confirmation
	// and the new ID.
	resp = doJSON(t, newTestClient(t), http.MethodPost, srv.URL+"/api/contact", ContactRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Oportunidade",
		Message: "Adorei o portfólio!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	submitted := decodeBody[ContactSubmittedResponse](t, resp)
	assert.Equal(t, "Mensagem enviada com sucesso! Entrarei em contato em breve.", submitted.Message)
	assert.NotEmpty(t, submitted.ID)

	// Submissions are only listed for the admin.
	resp, err := http.Get(srv.URL + "/api/contacts")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)
	resp, err = admin.Get(srv.URL + "/api/contacts")
	require.NoError(t, err)
	contacts := decodeBody[[]json.RawMessage](t, resp)
	assert.Len(t, contacts, 1)
}

func TestExperienceLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)

	resp := doJSON(t, admin, http.MethodPost, srv.URL+"/api/experiences", CreateExperienceRequest{
		Title:       "Backend Developer",
		Company:     "Acme",
		Description: "APIs in Go",
		StartDate:   "2023-06-01",
		Current:     true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	experience := decodeBody[ExperienceResponse](t, resp)
	assert.True(t, experience.Current)
	assert.Nil(t, experience.EndDate)

	endDate := "2026-01-31"
	current := false
	resp = doJSON(t, admin, http.MethodPut, srv.URL+"/api/experiences/"+experience.ID, UpdateExperienceRequest{
		EndDate: &endDate,
		Current: &current,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[ExperienceResponse](t, resp)
	require.NotNil(t, updated.EndDate)
	assert.False(t, updated.Current)

	resp, err := http.Get(srv.URL + "/api/experiences")
	require.NoError(t, err)
	assert.Len(t, decodeBody[[]ExperienceResponse](t, resp), 1)

	resp = doJSON(t, admin, http.MethodDelete, srv.URL+"/api/experiences/"+experience.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Experiência deletada com sucesso", decodeBody[MessageResponse](t, resp).Message)
}

func TestNotificationEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)
	project := createProject(t, admin, srv.URL, "noticed")

	user := newTestClient(t)
	registerUser(t, user, srv.URL, "noisy@example.com")
	resp := doJSON(t, user, http.MethodPost, srv.URL+"/api/projects/"+project.ID+"/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The owner sees the notification.
	resp, err := admin.Get(srv.URL + "/api/notifications")
	require.NoError(t, err)
	notifications := decodeBody[[]NotificationResponse](t, resp)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Read)
	assert.Contains(t, notifications[0].Message, "curtiu seu projeto")

	// Another user cannot mark it read.
	resp = doJSON(t, user, http.MethodPost, srv.URL+"/api/notifications/"+notifications[0].ID+"/read", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The owner can.
	resp = doJSON(t, admin, http.MethodPost, srv.URL+"/api/notifications/"+notifications[0].ID+"/read", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = admin.Get(srv.URL + "/api/notifications")
	require.NoError(t, err)
	notifications = decodeBody[[]NotificationResponse](t, resp)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].Read)
}

func TestDeleteConfirmationInEnglish(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := newTestClient(t)
	login(t, admin, srv.URL, testAdminEmail, testAdminPassword)
	project := createProject(t, admin, srv.URL, "bilingual")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/projects/"+project.ID, nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := admin.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Project deleted successfully", decodeBody[MessageResponse](t, resp).Message)
}

func TestDevAutologin(t *testing.T) {
	require.NoError(t, i18n.Init(slog.Default()))

	st := store.NewMemoryStore()
	require.NoError(t, store.EnsureAdmin(context.Background(), st, testAdminEmail, testAdminPassword))

	listCache := cache.NewMemoryCache(time.Minute, 64)
	t.Cleanup(func() { listCache.Close() })

	h := New(st, session.NewMemory(true), listCache, time.Minute, nil, &version.Info{})
	srv := httptest.NewServer(Routes(h, st, RouterOptions{DevAutologin: true}))
	t.Cleanup(srv.Close)

	// No login, no cookie; requests still act as the admin.
	resp, err := http.Get(srv.URL + "/api/auth/user")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testAdminEmail, decodeBody[UserResponse](t, resp).Email)
}

func TestMalformedJSONBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/contact", "application/json",
		bytes.NewReader([]byte(`{"name": `)))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Dados inválidos", decodeBody[ErrorResponse](t, resp).Message)
}
