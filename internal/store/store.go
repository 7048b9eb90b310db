// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package store provides the data access layer. A single Store contract
// is served by two interchangeable backends: a relational one
// (SQLite or MySQL) and an in-memory one with equivalent semantics,
// plus a fallback wrapper that degrades to memory when the database
// becomes unreachable and recovers once it is healthy again.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// Sentinel errors shared by all backends. Handlers map these to HTTP
// statuses; anything else is treated as an infrastructure failure.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken means a user with that email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnavailable means the backing database is unreachable.
	// Surfaced to clients as 503, never as a silent empty result.
	ErrUnavailable = errors.New("storage unavailable")
)

// CreateUserParams holds the fields needed to create a user.
type CreateUserParams struct {
	Email           string
	PasswordHash    string // empty for provider-backed accounts
	FirstName       string
	LastName        string
	ProfileImageURL string
	Role            string
	Provider        string
	ProviderID      string
}

// UpdateUserParams holds the optional fields of a profile update.
// Nil pointers leave the column untouched.
type UpdateUserParams struct {
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

// CreateProjectParams holds the fields needed to create a project.
type CreateProjectParams struct {
	Title        string
	Description  string
	Image        string
	GithubURL    string
	DemoURL      string
	Technologies []string
	Category     string
	Tags         []string
	Status       string
	Featured     bool
}

// UpdateProjectParams is a partial project update; nil means unchanged.
type UpdateProjectParams struct {
	Title        *string
	Description  *string
	Image        *string
	GithubURL    *string
	DemoURL      *string
	Technologies *[]string
	Category     *string
	Tags         *[]string
	Status       *string
	Featured     *bool
}

// CreateAchievementParams holds the fields needed to create an achievement.
type CreateAchievementParams struct {
	Title          string
	Description    string
	Image          string
	Date           time.Time
	Category       string
	CertificateURL string
	Organization   string
	Status         string
	Featured       bool
}

// UpdateAchievementParams is a partial achievement update.
type UpdateAchievementParams struct {
	Title          *string
	Description    *string
	Image          *string
	Date           *time.Time
	Category       *string
	CertificateURL *string
	Organization   *string
	Status         *string
	Featured       *bool
}

// CreateExperienceParams holds the fields needed to create an experience.
type CreateExperienceParams struct {
	Title        string
	Company      string
	Description  string
	StartDate    time.Time
	EndDate      *time.Time
	Location     string
	Technologies []string
	Current      bool
	Status       string
}

// UpdateExperienceParams is a partial experience update.
type UpdateExperienceParams struct {
	Title        *string
	Company      *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Location     *string
	Technologies *[]string
	Current      *bool
	Status       *string
}

// CreateContactParams holds a contact-form submission.
type CreateContactParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// CreateNotificationParams holds the fields needed to create a notification.
type CreateNotificationParams struct {
	UserID     string
	Type       string
	EntityType string
	EntityID   string
	FromUserID string
	Message    string
}

// Store is the uniform CRUD/query contract served by every backend.
// All blocking operations take a context; list results come back in a
// fixed order (creation date descending unless noted).
type Store interface {
	// Users
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetAdmin(ctx context.Context) (model.User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (model.User, error)

	// Projects. ListProjects annotates each row with like/comment
	// counts and, when viewerID is non-empty, whether that viewer
	// liked it. Drafts are only included when includeDrafts is set.
	ListProjects(ctx context.Context, viewerID string, includeDrafts bool) ([]model.ProjectWithStats, error)
	GetProject(ctx context.Context, id string) (model.Project, error)
	CreateProject(ctx context.Context, params CreateProjectParams) (model.Project, error)
	UpdateProject(ctx context.Context, id string, params UpdateProjectParams) (model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ToggleProjectLike(ctx context.Context, projectID, userID string) (bool, error)
	ListProjectComments(ctx context.Context, projectID string) ([]model.CommentWithUser, error)
	AddProjectComment(ctx context.Context, projectID, userID, content string) (model.CommentWithUser, error)

	// Achievements, same shape as projects.
	ListAchievements(ctx context.Context, viewerID string, includeDrafts bool) ([]model.AchievementWithStats, error)
	GetAchievement(ctx context.Context, id string) (model.Achievement, error)
	CreateAchievement(ctx context.Context, params CreateAchievementParams) (model.Achievement, error)
	UpdateAchievement(ctx context.Context, id string, params UpdateAchievementParams) (model.Achievement, error)
	DeleteAchievement(ctx context.Context, id string) error
	ToggleAchievementLike(ctx context.Context, achievementID, userID string) (bool, error)
	ListAchievementComments(ctx context.Context, achievementID string) ([]model.CommentWithUser, error)
	AddAchievementComment(ctx context.Context, achievementID, userID, content string) (model.CommentWithUser, error)

	// Experiences, ordered by start date descending.
	ListExperiences(ctx context.Context, includeDrafts bool) ([]model.Experience, error)
	CreateExperience(ctx context.Context, params CreateExperienceParams) (model.Experience, error)
	UpdateExperience(ctx context.Context, id string, params UpdateExperienceParams) (model.Experience, error)
	DeleteExperience(ctx context.Context, id string) error

	// Contacts
	CreateContact(ctx context.Context, params CreateContactParams) (model.Contact, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)

	// Notifications
	ListNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	CreateNotification(ctx context.Context, params CreateNotificationParams) (model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	PruneReadNotifications(ctx context.Context, olderThan time.Time) (int64, error)

	// Ping reports backend health.
	Ping(ctx context.Context) error
	Close() error
}
