// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware for authentication,
// authorization and request handling.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key holding the authenticated user.
const ContextKeyUser ContextKey = "user"

// SessionKeyUserID is the session key for the authenticated user ID.
const SessionKeyUserID = "user_id"

// ErrorWriter writes an error response; injected by the handler package
// so middleware responses share the API error shape and translations.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, messageKey string)

// LoadUser resolves the session into a user and attaches it to the
// request context. Requests without a valid session pass through
// anonymously; a session pointing at a deleted user is destroyed.
func LoadUser(sm *scs.SessionManager, st store.Store, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), SessionKeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := st.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					_ = sm.Destroy(r.Context())
					next.ServeHTTP(w, r)
					return
				}
				slog.Error("loading session user", "error", err)
				writeError(w, r, http.StatusServiceUnavailable, "errors.unavailable")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth(writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r) == nil {
				writeError(w, r, http.StatusUnauthorized, "errors.unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests unless the authenticated user carries
// the persisted admin role.
func RequireAdmin(writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				writeError(w, r, http.StatusUnauthorized, "errors.unauthorized")
				return
			}
			if !user.IsAdmin() {
				writeError(w, r, http.StatusForbidden, "errors.forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DevAutologin attaches the admin identity to every request. This is
// the legacy development shim; config refuses to enable it outside
// development, and it must never be active in production.
func DevAutologin(st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r) != nil {
				next.ServeHTTP(w, r)
				return
			}
			admin, err := st.GetAdmin(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyUser, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if the request is anonymous.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID, or "" for anonymous requests.
func GetUserID(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return ""
}
