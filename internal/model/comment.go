// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package model

import "time"

// Entity types that support likes and comments.
const (
	EntityProject     = "project"
	EntityAchievement = "achievement"
)

// Like marks that a user liked a project or achievement. A (entity,
// user) pair is unique; the storage backends enforce this with a
// constraint, not a read-then-write round trip.
type Like struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a user comment on a project or achievement.
type Comment struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentWithUser is a Comment hydrated with its author for display.
type CommentWithUser struct {
	Comment
	User CommentAuthor `json:"user"`
}

// CommentAuthor is the subset of User exposed alongside a comment.
type CommentAuthor struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}
