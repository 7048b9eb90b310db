// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Entity statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Project represents a portfolio project.
type Project struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Image        string         `json:"image"`
	GithubURL    sql.NullString `json:"githubUrl,omitempty"`
	DemoURL      sql.NullString `json:"demoUrl,omitempty"`
	Technologies []string       `json:"technologies"`
	Category     string         `json:"category"`
	Tags         []string       `json:"tags"`
	Status       string         `json:"status"`
	Featured     bool           `json:"featured"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// IsPublished returns true if the project is published.
func (p *Project) IsPublished() bool {
	return p.Status == StatusPublished
}

// ProjectWithStats is a Project annotated with live-computed engagement
// counters and, when a viewer is known, whether that viewer liked it.
type ProjectWithStats struct {
	Project
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
	UserLiked     bool  `json:"userLiked"`
}
