// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification tells a user somebody interacted with their content.
type Notification struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Type       string         `json:"type"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	FromUserID sql.NullString `json:"fromUserId,omitempty"`
	Message    string         `json:"message"`
	Read       bool           `json:"read"`
	CreatedAt  time.Time      `json:"createdAt"`
}
