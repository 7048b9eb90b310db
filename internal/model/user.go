// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package model defines the domain types shared by the storage backends
// and HTTP handlers: User, Project, Achievement, Experience, Contact,
// Comment and Notification.
package model

import (
	"database/sql"
	"time"
)

// User roles. Role is assigned once at account provisioning and is the
// only source of authorization truth afterwards.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a portfolio site account.
type User struct {
	ID              string         `json:"id"`
	Email           string         `json:"email"`
	PasswordHash    sql.NullString `json:"-"` // null for provider-backed accounts
	FirstName       sql.NullString `json:"firstName,omitempty"`
	LastName        sql.NullString `json:"lastName,omitempty"`
	ProfileImageURL sql.NullString `json:"profileImageUrl,omitempty"`
	Role            string         `json:"role"`
	Provider        string         `json:"provider"`
	ProviderID      sql.NullString `json:"providerId,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the user's full name, falling back to the email.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName.Valid && u.LastName.Valid:
		return u.FirstName.String + " " + u.LastName.String
	case u.FirstName.Valid:
		return u.FirstName.String
	default:
		return u.Email
	}
}
