// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Experience represents a professional experience entry.
type Experience struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Company      string         `json:"company"`
	Description  string         `json:"description"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      sql.NullTime   `json:"endDate,omitempty"`
	Location     sql.NullString `json:"location,omitempty"`
	Technologies []string       `json:"technologies"`
	Current      bool           `json:"current"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
