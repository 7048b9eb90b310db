// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// UserResponse represents a user in API responses. The password hash
// never leaves the store layer.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProjectEntityResponse is a project as returned from create and
// update, without the per-viewer engagement counters.
type ProjectEntityResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"descriptionHtml,omitempty"`
	Image           string    `json:"image"`
	GithubURL       string    `json:"githubUrl,omitempty"`
	DemoURL         string    `json:"demoUrl,omitempty"`
	Technologies    []string  `json:"technologies"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	Status          string    `json:"status"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProjectResponse is a project in list responses, annotated with the
// engagement counters computed per request.
type ProjectResponse struct {
	ProjectEntityResponse
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
	UserLiked     bool  `json:"userLiked"`
}

// AchievementEntityResponse is an achievement as returned from create
// and update.
type AchievementEntityResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"descriptionHtml,omitempty"`
	Image           string    `json:"image,omitempty"`
	Date            time.Time `json:"date"`
	Category        string    `json:"category"`
	CertificateURL  string    `json:"certificateUrl,omitempty"`
	Organization    string    `json:"organization,omitempty"`
	Status          string    `json:"status"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AchievementResponse is an achievement in list responses.
type AchievementResponse struct {
	AchievementEntityResponse
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
	UserLiked     bool  `json:"userLiked"`
}

// ExperienceResponse represents a professional experience entry.
type ExperienceResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Description  string     `json:"description"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Location     string     `json:"location,omitempty"`
	Technologies []string   `json:"technologies"`
	Current      bool       `json:"current"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CommentResponse represents a comment with its author.
type CommentResponse struct {
	ID        string              `json:"id"`
	Content   string              `json:"content"`
	CreatedAt time.Time           `json:"createdAt"`
	User      model.CommentAuthor `json:"user"`
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	FromUserID string    `json:"fromUserId,omitempty"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

func nullToStr(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullToTime(v sql.NullTime) *time.Time {
	if v.Valid {
		t := v.Time
		return &t
	}
	return nil
}

func userToResponse(u model.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       nullToStr(u.FirstName),
		LastName:        nullToStr(u.LastName),
		ProfileImageURL: nullToStr(u.ProfileImageURL),
		Role:            u.Role,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (h *Handler) projectToEntityResponse(p model.Project) ProjectEntityResponse {
	return ProjectEntityResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		DescriptionHTML: h.renderMarkdown(p.Description),
		Image:           p.Image,
		GithubURL:       nullToStr(p.GithubURL),
		DemoURL:         nullToStr(p.DemoURL),
		Technologies:    p.Technologies,
		Category:        p.Category,
		Tags:            p.Tags,
		Status:          p.Status,
		Featured:        p.Featured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (h *Handler) projectToResponse(p model.ProjectWithStats) ProjectResponse {
	return ProjectResponse{
		ProjectEntityResponse: h.projectToEntityResponse(p.Project),
		LikesCount:            p.LikesCount,
		CommentsCount:         p.CommentsCount,
		UserLiked:             p.UserLiked,
	}
}

func (h *Handler) achievementToEntityResponse(a model.Achievement) AchievementEntityResponse {
	return AchievementEntityResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		DescriptionHTML: h.renderMarkdown(a.Description),
		Image:           nullToStr(a.Image),
		Date:            a.Date,
		Category:        a.Category,
		CertificateURL:  nullToStr(a.CertificateURL),
		Organization:    nullToStr(a.Organization),
		Status:          a.Status,
		Featured:        a.Featured,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (h *Handler) achievementToResponse(a model.AchievementWithStats) AchievementResponse {
	return AchievementResponse{
		AchievementEntityResponse: h.achievementToEntityResponse(a.Achievement),
		LikesCount:                a.LikesCount,
		CommentsCount:             a.CommentsCount,
		UserLiked:                 a.UserLiked,
	}
}

func experienceToResponse(e model.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:           e.ID,
		Title:        e.Title,
		Company:      e.Company,
		Description:  e.Description,
		StartDate:    e.StartDate,
		EndDate:      nullToTime(e.EndDate),
		Location:     nullToStr(e.Location),
		Technologies: e.Technologies,
		Current:      e.Current,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func commentToResponse(c model.CommentWithUser) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User:      c.User,
	}
}

func notificationToResponse(n model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Type:       n.Type,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		FromUserID: nullToStr(n.FromUserID),
		Message:    n.Message,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}
