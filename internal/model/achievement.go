// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Achievement represents a certification, award or other milestone.
type Achievement struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Image          sql.NullString `json:"image,omitempty"`
	Date           time.Time      `json:"date"`
	Category       string         `json:"category"`
	CertificateURL sql.NullString `json:"certificateUrl,omitempty"`
	Organization   sql.NullString `json:"organization,omitempty"`
	Status         string         `json:"status"`
	Featured       bool           `json:"featured"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// IsPublished returns true if the achievement is published.
func (a *Achievement) IsPublished() bool {
	return a.Status == StatusPublished
}

// AchievementWithStats carries the same derived counters as
// ProjectWithStats.
type AchievementWithStats struct {
	Achievement
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
	UserLiked     bool  `json:"userLiked"`
}
