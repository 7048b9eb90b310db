// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rafaelabotelho/portfolio-go/internal/auth"
	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// EnsureAdmin provisions the single admin account. The admin email is
// used here and nowhere else; every later authorization check reads the
// persisted role. A missing password leaves the account without local
// credentials (provider-only login), which is logged for the operator.
func EnsureAdmin(ctx context.Context, s Store, email, password string) error {
	existing, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			return fmt.Errorf("account %s exists without the admin role; fix the role column manually", email)
		}
		slog.Info("admin account already provisioned", "email", email)
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for admin account: %w", err)
	}

	var passwordHash string
	if password != "" {
		passwordHash, err = auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
	} else {
		slog.Warn("PORTFOLIO_ADMIN_PASSWORD not set; admin account created without local credentials")
	}

	user, err := s.CreateUser(ctx, CreateUserParams{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Provider:     "local",
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	slog.Info("admin account provisioned", "email", email, "id", user.ID)
	return nil
}
