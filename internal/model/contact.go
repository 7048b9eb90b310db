// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package model

import "time"

// Contact is a contact-form submission. Append-only, no relations.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
