// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
	"github.com/rafaelabotelho/portfolio-go/internal/model"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
)

// CreateExperienceRequest is the request body for creating an
// experience entry.
type CreateExperienceRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Location     string   `json:"location,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Current      bool     `json:"current"`
	Status       string   `json:"status,omitempty"`
}

// UpdateExperienceRequest is the request body for a partial update.
type UpdateExperienceRequest struct {
	Title        *string   `json:"title,omitempty"`
	Company      *string   `json:"company,omitempty"`
	Description  *string   `json:"description,omitempty"`
	StartDate    *string   `json:"startDate,omitempty"`
	EndDate      *string   `json:"endDate,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	Current      *bool     `json:"current,omitempty"`
	Status       *string   `json:"status,omitempty"`
}

// ListExperiences returns experience entries ordered by start date
// descending, drafts included for the admin.
func (h *Handler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetUser(r)
	includeDrafts := viewer != nil && viewer.IsAdmin()

	experiences, err := h.store.ListExperiences(r.Context(), includeDrafts)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	responses := make([]ExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		responses = append(responses, experienceToResponse(e))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// CreateExperience creates an experience entry. Admin only.
func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var req CreateExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "title is required"
	}
	if strings.TrimSpace(req.Company) == "" {
		fieldErrors["company"] = "company is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors["description"] = "description is required"
	}
	startDate, ok := parseDate(req.StartDate)
	if !ok {
		fieldErrors["startDate"] = "startDate must be YYYY-MM-DD or RFC 3339"
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, ok := parseDate(req.EndDate)
		if !ok {
			fieldErrors["endDate"] = "endDate must be YYYY-MM-DD or RFC 3339"
		} else {
			endDate = &parsed
		}
	}
	if req.Status != "" && req.Status != model.StatusDraft && req.Status != model.StatusPublished {
		fieldErrors["status"] = "status must be draft or published"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	experience, err := h.store.CreateExperience(r.Context(), store.CreateExperienceParams{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		StartDate:    startDate,
		EndDate:      endDate,
		Location:     req.Location,
		Technologies: req.Technologies,
		Current:      req.Current,
		Status:       req.Status,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("experience created", "experience_id", experience.ID, "title", experience.Title)
	WriteJSON(w, http.StatusCreated, experienceToResponse(experience))
}

// UpdateExperience applies a partial update. Admin only.
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := store.UpdateExperienceParams{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Location:     req.Location,
		Technologies: req.Technologies,
		Current:      req.Current,
		Status:       req.Status,
	}
	if req.StartDate != nil {
		parsed, ok := parseDate(*req.StartDate)
		if !ok {
			WriteValidationError(w, r, map[string]string{"startDate": "startDate must be YYYY-MM-DD or RFC 3339"})
			return
		}
		params.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, ok := parseDate(*req.EndDate)
		if !ok {
			WriteValidationError(w, r, map[string]string{"endDate": "endDate must be YYYY-MM-DD or RFC 3339"})
			return
		}
		params.EndDate = &parsed
	}
	if req.Status != nil && *req.Status != model.StatusDraft && *req.Status != model.StatusPublished {
		WriteValidationError(w, r, map[string]string{"status": "status must be draft or published"})
		return
	}

	experience, err := h.store.UpdateExperience(r.Context(), id, params)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, experienceToResponse(experience))
}

// DeleteExperience removes an experience entry. Admin only.
func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteExperience(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("experience deleted", "experience_id", id)
	WriteMessage(w, r, http.StatusOK, "experience.deleted")
}
