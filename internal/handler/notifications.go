// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
)

// ListNotifications returns the requester's notifications, newest
// first.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	notifications, err := h.store.ListNotifications(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notificationToResponse(n))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// MarkNotificationRead marks one of the requester's notifications as
// read. Another user's notification reads as 404, not 403, so IDs
// aren't probeable.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := middleware.GetUser(r)

	if err := h.store.MarkNotificationRead(r.Context(), id, user.ID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
