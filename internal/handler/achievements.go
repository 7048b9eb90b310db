// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
	"github.com/rafaelabotelho/portfolio-go/internal/model"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
)

// cacheKeyAchievements caches the anonymous public achievement list.
const cacheKeyAchievements = "achievements:public"

// dateLayout accepts bare dates alongside RFC 3339 timestamps.
const dateLayout = "2006-01-02"

// CreateAchievementRequest is the request body for creating an achievement.
type CreateAchievementRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Image          string `json:"image,omitempty"`
	Date           string `json:"date"`
	Category       string `json:"category"`
	CertificateURL string `json:"certificateUrl,omitempty"`
	Organization   string `json:"organization,omitempty"`
	Status         string `json:"status,omitempty"`
	Featured       bool   `json:"featured"`
}

// UpdateAchievementRequest is the request body for a partial update.
type UpdateAchievementRequest struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Image          *string `json:"image,omitempty"`
	Date           *string `json:"date,omitempty"`
	Category       *string `json:"category,omitempty"`
	CertificateURL *string `json:"certificateUrl,omitempty"`
	Organization   *string `json:"organization,omitempty"`
	Status         *string `json:"status,omitempty"`
	Featured       *bool   `json:"featured,omitempty"`
}

// parseDate accepts "2006-01-02" or RFC 3339.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ListAchievements returns all achievements visible to the requester.
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetUser(r)

	if viewer == nil {
		if data, ok := h.cacheGet(r, cacheKeyAchievements); ok {
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

	achievements, err := h.store.ListAchievements(r.Context(), viewerID, includeDrafts)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	responses := make([]AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		responses = append(responses, h.achievementToResponse(a))
	}

	if viewer == nil {
		if data, err := json.Marshal(responses); err == nil {
			h.cacheSet(r, cacheKeyAchievements, data)
		}
	}

	WriteJSON(w, http.StatusOK, responses)
}

// CreateAchievement creates an achievement. Admin only.
func (h *Handler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req CreateAchievementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "title is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors["description"] = "description is required"
	}
	if strings.TrimSpace(req.Category) == "" {
		fieldErrors["category"] = "category is required"
	}
	date, ok := parseDate(req.Date)
	if !ok {
		fieldErrors["date"] = "date must be YYYY-MM-DD or RFC 3339"
	}
	if req.Status != "" && req.Status != model.StatusDraft && req.Status != model.StatusPublished {
		fieldErrors["status"] = "status must be draft or published"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	achievement, err := h.store.CreateAchievement(r.Context(), store.CreateAchievementParams{
		Title:          req.Title,
		Description:    req.Description,
		Image:          req.Image,
		Date:           date,
		Category:       req.Category,
		CertificateURL: req.CertificateURL,
		Organization:   req.Organization,
		Status:         req.Status,
		Featured:       req.Featured,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyAchievements)
	slog.Info("achievement created", "achievement_id", achievement.ID, "title", achievement.Title)
	WriteJSON(w, http.StatusCreated, h.achievementToEntityResponse(achievement))
}

// UpdateAchievement applies a partial update. Admin only.
func (h *Handler) UpdateAchievement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateAchievementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := store.UpdateAchievementParams{
		Title:          req.Title,
		Description:    req.Description,
		Image:          req.Image,
		Category:       req.Category,
		CertificateURL: req.CertificateURL,
		Organization:   req.Organization,
		Status:         req.Status,
		Featured:       req.Featured,
	}
	if req.Date != nil {
		date, ok := parseDate(*req.Date)
		if !ok {
			WriteValidationError(w, r, map[string]string{"date": "date must be YYYY-MM-DD or RFC 3339"})
			return
		}
		params.Date = &date
	}
	if req.Status != nil && *req.Status != model.StatusDraft && *req.Status != model.StatusPublished {
		WriteValidationError(w, r, map[string]string{"status": "status must be draft or published"})
		return
	}

	achievement, err := h.store.UpdateAchievement(r.Context(), id, params)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyAchievements)
	WriteJSON(w, http.StatusOK, h.achievementToEntityResponse(achievement))
}

// DeleteAchievement removes an achievement and its likes and comments.
// Admin only.
func (h *Handler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteAchievement(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyAchievements)
	slog.Info("achievement deleted", "achievement_id", id)
	WriteMessage(w, r, http.StatusOK, "achievement.deleted")
}

// ToggleAchievementLike flips the requester's like on an achievement.
func (h *Handler) ToggleAchievementLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := middleware.GetUser(r)

	liked, err := h.store.ToggleAchievementLike(r.Context(), id, user.ID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyAchievements)
	if liked {
		h.notifyAdmin(r, user, model.NotificationLike, model.EntityAchievement, id, "notification.achievement_liked")
	}
	WriteJSON(w, http.StatusOK, LikeResponse{Liked: liked})
}

// ListAchievementComments returns an achievement's comments, newest
// first. Public.
func (h *Handler) ListAchievementComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	comments, err := h.store.ListAchievementComments(r.Context(), id)
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

// AddAchievementComment adds an authenticated user's comment.
func (h *Handler) AddAchievementComment(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.store.AddAchievementComment(r.Context(), id, user.ID, content)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.cacheInvalidate(r, cacheKeyAchievements)
	h.notifyAdmin(r, user, model.NotificationComment, model.EntityAchievement, id, "notification.achievement_commented")
	WriteJSON(w, http.StatusCreated, commentToResponse(comment))
}
