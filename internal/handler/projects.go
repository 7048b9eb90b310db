// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelabotelho/portfolio-go/internal/i18n"
	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
	"github.com/rafaelabotelho/portfolio-go/internal/model"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
)

// cacheKeyProjects caches the anonymous public project list.
const cacheKeyProjects = "projects:public"

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	DemoURL      string   `json:"demoUrl,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags,omitempty"`
	Status       string   `json:"status,omitempty"`
	Featured     bool     `json:"featured"`
}

// UpdateProjectRequest is the request body for a partial project
// update. Absent fields leave the column untouched.
type UpdateProjectRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Image        *string   `json:"image,omitempty"`
	GithubURL    *string   `json:"githubUrl,omitempty"`
	DemoURL      *string   `json:"demoUrl,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Status       *string   `json:"status,omitempty"`
	Featured     *bool     `json:"featured,omitempty"`
}

// CommentRequest is the request body for adding a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

// LikeResponse reports the new like state after a toggle.
type LikeResponse struct {
	Liked bool `json:"liked"`
}

func (req *CreateProjectRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "title is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors["description"] = "description is required"
	}
	if strings.TrimSpace(req.Image) == "" {
		fieldErrors["image"] = "image is required"
	}
	if strings.TrimSpace(req.Category) == "" {
		fieldErrors["category"] = "category is required"
	}
	if req.Status != "" && req.Status != model.StatusDraft && req.Status != model.StatusPublished {
		fieldErrors["status"] = "status must be draft or published"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// ListProjects returns all projects visible to the requester: published
// ones for everybody, drafts included for the admin. The anonymous
// response is served from the list cache when possible.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetUser(r)

	if viewer == nil {
		if data, ok := h.cacheGet(r, cacheKeyProjects); ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(data)
			return
		}
	}

	viewerID := ""
	includeDrafts := false
	if viewer != nil {
		viewerID = viewer.ID
		includeDrafts = viewer.IsAdmin()
	}

	projects, err := h.store.ListProjects(r.Context(), viewerID, includeDrafts)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, h.projectToResponse(p))
	}

	if viewer == nil {
		if data, err := json.Marshal(responses); err == nil {
			h.cacheSet(r, cacheKeyProjects, data)
		}
	}

	WriteJSON(w, http.StatusOK, responses)
}

// CreateProject creates a project. Admin only.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	project, err := h.store.CreateProject(r.Context(), store.CreateProjectParams{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		GithubURL:    req.GithubURL,
		DemoURL:      req.DemoURL,
		Technologies: req.Technologies,
		Category:     req.Category,
		Tags:         req.Tags,
		Status:       req.Status,
		Featured:     req.Featured,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyProjects)
	slog.Info("project created", "project_id", project.ID, "title", project.Title)
	WriteJSON(w, http.StatusCreated, h.projectToEntityResponse(project))
}

// UpdateProject applies a partial update to a project. Admin only.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status != nil && *req.Status != model.StatusDraft && *req.Status != model.StatusPublished {
		WriteValidationError(w, r, map[string]string{"status": "status must be draft or published"})
		return
	}

	project, err := h.store.UpdateProject(r.Context(), id, store.UpdateProjectParams{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		GithubURL:    req.GithubURL,
		DemoURL:      req.DemoURL,
		Technologies: req.Technologies,
		Category:     req.Category,
		Tags:         req.Tags,
		Status:       req.Status,
		Featured:     req.Featured,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyProjects)
	WriteJSON(w, http.StatusOK, h.projectToEntityResponse(project))
}

// DeleteProject removes a project and, via FK cascade, its likes and
// comments. Admin only.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyProjects)
	slog.Info("project deleted", "project_id", id)
	WriteMessage(w, r, http.StatusOK, "project.deleted")
}

// ToggleProjectLike flips the requester's like on a project and
// reports the new state.
func (h *Handler) ToggleProjectLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := middleware.GetUser(r)

	liked, err := h.store.ToggleProjectLike(r.Context(), id, user.ID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyProjects)
	if liked {
		h.notifyAdmin(r, user, model.NotificationLike, model.EntityProject, id, "notification.project_liked")
	}
	WriteJSON(w, http.StatusOK, LikeResponse{Liked: liked})
}

// ListProjectComments returns a project's comments, newest first.
// Public.
func (h *Handler) ListProjectComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	comments, err := h.store.ListProjectComments(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, commentToResponse(c))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// AddProjectComment adds an authenticated user's comment to a project.
// Content is sanitized before it is stored.
func (h *Handler) AddProjectComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := middleware.GetUser(r)

	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	content := strings.TrimSpace(h.sanitizer.Sanitize(req.Content))
	if content == "" {
		WriteValidationError(w, r, map[string]string{"content": "content is required"})
		return
	}

	comment, err := h.store.AddProjectComment(r.Context(), id, user.ID, content)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyProjects)
	h.notifyAdmin(r, user, model.NotificationComment, model.EntityProject, id, "notification.project_commented")
	WriteJSON(w, http.StatusCreated, commentToResponse(comment))
}

// notifyAdmin records an interaction notification for the site owner.
// The owner's own interactions and notification failures are dropped
// silently; engagement must never fail the user action.
func (h *Handler) notifyAdmin(r *http.Request, actor *model.User, kind, entityType, entityID, messageKey string) {
	admin, err := h.store.GetAdmin(r.Context())
	if err != nil {
		return
	}
	if admin.ID == actor.ID {
		return
	}

	message := actor.DisplayName() + " " + i18n.T(i18n.DefaultLanguage(), messageKey)
	_, err = h.store.CreateNotification(r.Context(), store.CreateNotificationParams{
		UserID:     admin.ID,
		Type:       kind,
		EntityType: entityType,
		EntityID:   entityID,
		FromUserID: actor.ID,
		Message:    message,
	})
	if err != nil {
		slog.Warn("creating notification", "error", err)
	}
}
