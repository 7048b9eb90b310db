// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package handler provides the REST API handlers for the portfolio
// backend. Responses keep the wire shape the frontend already speaks:
// flat entities and arrays, `{"message": ...}` envelopes for
// confirmations and errors, field maps for validation failures.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/rafaelabotelho/portfolio-go/internal/cache"
	"github.com/rafaelabotelho/portfolio-go/internal/i18n"
	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
	"github.com/rafaelabotelho/portfolio-go/internal/version"
)

// maxBodySize caps request bodies at 1 MB.
const maxBodySize = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store      store.Store
	sessions   *scs.SessionManager
	cache      cache.Cache
	cacheTTL   time.Duration
	sanitizer  *bluemonday.Policy
	markdown   goldmark.Markdown
	version    *version.Info
	loginGuard *middleware.LoginProtection
}

// New creates the API handler.
func New(st store.Store, sessions *scs.SessionManager, c cache.Cache, cacheTTL time.Duration, guard *middleware.LoginProtection, info *version.Info) *Handler {
	return &Handler{
		store:      st,
		sessions:   sessions,
		cache:      c,
		cacheTTL:   cacheTTL,
		sanitizer:  bluemonday.StrictPolicy(),
		markdown:   goldmark.New(),
		version:    info,
		loginGuard: guard,
	}
}

// MessageResponse is the `{"message": ...}` confirmation envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error envelope; Errors carries per-field
// validation messages on 400 responses.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// lang negotiates the response language from the Accept-Language header.
func lang(r *http.Request) string {
	return i18n.Match(r.Header.Get("Accept-Language"))
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteMessage writes a translated confirmation message.
func WriteMessage(w http.ResponseWriter, r *http.Request, statusCode int, messageKey string) {
	WriteJSON(w, statusCode, MessageResponse{Message: i18n.T(lang(r), messageKey)})
}

// WriteError writes a translated error message.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, messageKey string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: i18n.T(lang(r), messageKey)})
}

// WriteValidationError writes a 400 response with per-field errors.
func WriteValidationError(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: i18n.T(lang(r), "errors.invalid_data"),
		Errors:  fieldErrors,
	})
}

// writeStoreError maps a storage failure to its HTTP status. Sentinel
// errors become 404/503; anything else is a 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "errors.not_found")
	case errors.Is(err, store.ErrUnavailable):
		slog.Error("storage unavailable", "path", r.URL.Path, "error", err)
		WriteError(w, r, http.StatusServiceUnavailable, "errors.unavailable")
	default:
		slog.Error("storage error", "path", r.URL.Path, "error", err)
		WriteError(w, r, http.StatusInternalServerError, "errors.internal")
	}
}

// decodeJSON decodes a request body, rejecting unknown payloads larger
// than maxBodySize. A false return means the response is written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		WriteValidationError(w, r, map[string]string{"body": "invalid JSON"})
		return false
	}
	// Trailing garbage after the JSON value is also a client error.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		WriteValidationError(w, r, map[string]string{"body": "invalid JSON"})
		return false
	}
	return true
}

// renderMarkdown converts markdown to HTML for detail responses.
// Returns "" on render failure rather than failing the request.
func (h *Handler) renderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown render failed", "error", err)
		return ""
	}
	return buf.String()
}

// cacheGet reads a cached list payload; a miss or cache error just
// means the caller recomputes.
func (h *Handler) cacheGet(r *http.Request, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	data, err := h.cache.Get(r.Context(), key)
	if err != nil {
		return nil, false
	}
	return data, true
}

// cacheSet stores a list payload, logging and moving on when the cache
// is unreachable.
func (h *Handler) cacheSet(r *http.Request, key string, data []byte) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(r.Context(), key, data, h.cacheTTL); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// cacheInvalidate drops cached payloads after a write.
func (h *Handler) cacheInvalidate(r *http.Request, keys ...string) {
	if h.cache == nil {
		return
	}
	for _, key := range keys {
		if err := h.cache.Delete(r.Context(), key); err != nil {
			slog.Warn("cache invalidation failed", "key", key, "error", err)
		}
	}
}
