// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// CreateContact appends a contact-form submission.
func (s *SQLStore) CreateContact(ctx context.Context, params CreateContactParams) (model.Contact, error) {
	c := model.Contact{
		ID:        newID(),
		Name:      params.Name,
		Email:     params.Email,
		Subject:   params.Subject,
		Message:   params.Message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (id, name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Subject, c.Message, c.CreatedAt)
	if err != nil {
		return model.Contact{}, wrapErr("create contact", err)
	}
	return c, nil
}

// ListContacts returns all submissions, newest first.
func (s *SQLStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr("list contacts", err)
	}
	defer rows.Close()

	var result []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, wrapErr("scan contact", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list contacts", err)
	}
	return result, nil
}
