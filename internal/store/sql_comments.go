// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// listComments is shared by the project and achievement comment
// queries; table and FK column are trusted constants, never user input.
func (s *SQLStore) listComments(ctx context.Context, table, fkColumn, entityID string) ([]model.CommentWithUser, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.%s, c.user_id, c.content, c.created_at,
			u.id, u.first_name, u.last_name, u.profile_image_url
		FROM %s c
		INNER JOIN users u ON u.id = c.user_id
		WHERE c.%s = ?
		ORDER BY c.created_at DESC`, fkColumn, table, fkColumn)

	rows, err := s.db.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, wrapErr("list comments", err)
	}
	defer rows.Close()

	var result []model.CommentWithUser
	for rows.Next() {
		var c model.CommentWithUser
		var firstName, lastName, imageURL sql.NullString
		if err := rows.Scan(&c.ID, &c.EntityID, &c.UserID, &c.Content, &c.CreatedAt,
			&c.User.ID, &firstName, &lastName, &imageURL); err != nil {
			return nil, wrapErr("scan comment", err)
		}
		c.User.FirstName = firstName.String
		c.User.LastName = lastName.String
		c.User.ProfileImageURL = imageURL.String
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list comments", err)
	}
	return result, nil
}

func (s *SQLStore) addComment(ctx context.Context, table, fkColumn, entityID, userID, content string) (model.CommentWithUser, error) {
	author, err := s.GetUser(ctx, userID)
	if err != nil {
		return model.CommentWithUser{}, err
	}

	c := model.CommentWithUser{
		Comment: model.Comment{
			ID:        newID(),
			EntityID:  entityID,
			UserID:    userID,
			Content:   content,
			CreatedAt: time.Now().UTC(),
		},
		User: model.CommentAuthor{
			ID:              author.ID,
			FirstName:       author.FirstName.String,
			LastName:        author.LastName.String,
			ProfileImageURL: author.ProfileImageURL.String,
		},
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, user_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`, table, fkColumn)
	if _, err := s.db.ExecContext(ctx, query,
		c.ID, c.EntityID, c.UserID, c.Content, c.CreatedAt); err != nil {
		return model.CommentWithUser{}, wrapErr("add comment", err)
	}
	return c, nil
}
