// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

const userColumns = `id, email, password_hash, first_name, last_name,
	profile_image_url, role, provider, provider_id, created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.ProfileImageURL, &u.Role, &u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUser fetches a user by ID.
func (s *SQLStore) GetUser(ctx context.Context, id string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return model.User{}, wrapErr("get user", err)
	}
	return u, nil
}

// GetUserByEmail fetches a user by email.
func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return model.User{}, wrapErr("get user by email", err)
	}
	return u, nil
}

// GetAdmin fetches the admin account.
func (s *SQLStore) GetAdmin(ctx context.Context) (model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY created_at LIMIT 1`, model.RoleAdmin)
	u, err := scanUser(row)
	if err != nil {
		return model.User{}, wrapErr("get admin", err)
	}
	return u, nil
}

// CreateUser inserts a new user. Returns ErrEmailTaken if the email is
// already registered.
func (s *SQLStore) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	now := time.Now().UTC()
	u := model.User{
		ID:              newID(),
		Email:           params.Email,
		PasswordHash:    nullStr(params.PasswordHash),
		FirstName:       nullStr(params.FirstName),
		LastName:        nullStr(params.LastName),
		ProfileImageURL: nullStr(params.ProfileImageURL),
		Role:            params.Role,
		Provider:        params.Provider,
		ProviderID:      nullStr(params.ProviderID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.Provider == "" {
		u.Provider = "local"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name,
			profile_image_url, role, provider, provider_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.ProfileImageURL, u.Role, u.Provider, u.ProviderID, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, wrapErr("create user", err)
	}
	return u, nil
}

// UpdateUser applies a partial profile update and refreshes updated_at.
func (s *SQLStore) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (model.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	applyStr(&u.FirstName, params.FirstName)
	applyStr(&u.LastName, params.LastName)
	applyStr(&u.ProfileImageURL, params.ProfileImageURL)
	u.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, profile_image_url = ?, updated_at = ?
		WHERE id = ?`,
		u.FirstName, u.LastName, u.ProfileImageURL, u.UpdatedAt, id)
	if err != nil {
		return model.User{}, wrapErr("update user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.User{}, ErrNotFound
	}
	return u, nil
}
