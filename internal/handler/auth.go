// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/rafaelabotelho/portfolio-go/internal/auth"
	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
	"github.com/rafaelabotelho/portfolio-go/internal/model"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// LoginRequest is the request body for credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and starts a session for it.
// New accounts always get the regular user role; the admin account is
// provisioned at startup, never through this endpoint.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	fieldErrors := make(map[string]string)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = "invalid email address"
	}
	if len(req.Password) < minPasswordLength {
		fieldErrors["password"] = "password must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		WriteError(w, r, http.StatusInternalServerError, "errors.internal")
		return
	}

	user, err := h.store.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         model.RoleUser,
		Provider:     "local",
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			WriteError(w, r, http.StatusConflict, "auth.email_taken")
			return
		}
		writeStoreError(w, r, err)
		return
	}

	if err := h.startSession(r, user.ID); err != nil {
		slog.Error("starting session", "error", err)
		WriteError(w, r, http.StatusInternalServerError, "errors.internal")
		return
	}

	WriteJSON(w, http.StatusCreated, userToResponse(user))
}

// Login authenticates credentials and starts a session. Failed
// attempts feed the account lockout tracker.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		WriteValidationError(w, r, map[string]string{"credentials": "email and password are required"})
		return
	}

	if h.loginGuard != nil {
		if locked, remaining := h.loginGuard.IsAccountLocked(req.Email); locked {
			slog.Warn("login attempt on locked account", "email", req.Email, "remaining", remaining)
			WriteError(w, r, http.StatusTooManyRequests, "errors.too_many_requests")
			return
		}
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.recordFailedLogin(req.Email)
			WriteError(w, r, http.StatusUnauthorized, "auth.invalid_credentials")
			return
		}
		writeStoreError(w, r, err)
		return
	}

	valid := false
	if user.PasswordHash.Valid {
		valid, err = auth.CheckPassword(req.Password, user.PasswordHash.String)
		if err != nil {
			slog.Error("password check error", "user_id", user.ID, "error", err)
		}
	}
	if !valid {
		h.recordFailedLogin(req.Email)
		WriteError(w, r, http.StatusUnauthorized, "auth.invalid_credentials")
		return
	}

	if h.loginGuard != nil {
		h.loginGuard.RecordSuccessfulLogin(req.Email)
	}

	if err := h.startSession(r, user.ID); err != nil {
		slog.Error("starting session", "error", err)
		WriteError(w, r, http.StatusInternalServerError, "errors.internal")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	WriteJSON(w, http.StatusOK, userToResponse(user))
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
		WriteError(w, r, http.StatusInternalServerError, "errors.internal")
		return
	}
	WriteMessage(w, r, http.StatusOK, "auth.logged_out")
}

// CurrentUser returns the authenticated user.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteError(w, r, http.StatusUnauthorized, "errors.unauthorized")
		return
	}
	WriteJSON(w, http.StatusOK, userToResponse(*user))
}

// startSession renews the session token and binds it to the user.
// Token renewal on privilege change prevents session fixation.
func (h *Handler) startSession(r *http.Request, userID string) error {
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, userID)
	return nil
}

func (h *Handler) recordFailedLogin(email string) {
	if h.loginGuard == nil {
		return
	}
	if locked, duration := h.loginGuard.RecordFailedAttempt(email); locked {
		slog.Warn("account locked", "email", email, "duration", duration)
	}
}
