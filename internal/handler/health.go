// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
)

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"`
}

// Healthz reports liveness and storage health. The service keeps
// serving from the in-memory fallback when the database is down, so a
// degraded database still answers 200.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Database: "ok",
	}
	if h.version != nil {
		resp.Version = h.version.Version
	}
	if err := h.store.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
	}
	WriteJSON(w, http.StatusOK, resp)
}
