// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
)

// requestTimeout bounds every API request.
const requestTimeout = 30 * time.Second

// RouterOptions tunes the optional parts of the route stack.
type RouterOptions struct {
	// AllowedOrigins enables CORS for the decoupled frontend.
	AllowedOrigins []string

	// DevAutologin attaches the admin identity to anonymous requests.
	// Development only; config refuses it elsewhere.
	DevAutologin bool
}

// Routes assembles the full API router.
func Routes(h *Handler, st store.Store, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	r.Use(h.sessions.LoadAndSave)
	r.Use(middleware.LoadUser(h.sessions, st, WriteError))
	if opts.DevAutologin {
		r.Use(middleware.DevAutologin(st))
	}

	requireAuth := middleware.RequireAuth(WriteError)
	requireAdmin := middleware.RequireAdmin(WriteError)

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if h.loginGuard != nil {
				guarded := h.loginGuard.Middleware(WriteError)
				r.With(guarded).Post("/register", h.Register)
				r.With(guarded).Post("/login", h.Login)
			} else {
				r.Post("/register", h.Register)
				r.Post("/login", h.Login)
			}
			r.Post("/logout", h.Logout)
			r.Get("/user", h.CurrentUser)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.With(requireAdmin).Post("/", h.CreateProject)
			r.With(requireAdmin).Put("/{id}", h.UpdateProject)
			r.With(requireAdmin).Delete("/{id}", h.DeleteProject)
			r.With(requireAuth).Post("/{id}/like", h.ToggleProjectLike)
			r.Get("/{id}/comments", h.ListProjectComments)
			r.With(requireAuth).Post("/{id}/comments", h.AddProjectComment)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", h.ListAchievements)
			r.With(requireAdmin).Post("/", h.CreateAchievement)
			r.With(requireAdmin).Put("/{id}", h.UpdateAchievement)
			r.With(requireAdmin).Delete("/{id}", h.DeleteAchievement)
			r.With(requireAuth).Post("/{id}/like", h.ToggleAchievementLike)
			r.Get("/{id}/comments", h.ListAchievementComments)
			r.With(requireAuth).Post("/{id}/comments", h.AddAchievementComment)
		})

		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", h.ListExperiences)
			r.With(requireAdmin).Post("/", h.CreateExperience)
			r.With(requireAdmin).Put("/{id}", h.UpdateExperience)
			r.With(requireAdmin).Delete("/{id}", h.DeleteExperience)
		})

		r.Post("/contact", h.SubmitContact)
		r.With(requireAdmin).Get("/contacts", h.ListContacts)

		r.Route("/notifications", func(r chi.Router) {
			r.With(requireAuth).Get("/", h.ListNotifications)
			r.With(requireAuth).Post("/{id}/read", h.MarkNotificationRead)
		})
	})

	return r
}
