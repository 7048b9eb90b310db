// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package handler

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/rafaelabotelho/portfolio-go/internal/i18n"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
)

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactSubmittedResponse confirms a submission and returns its ID.
type ContactSubmittedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SubmitContact stores a contact-form submission. Public, no
// authentication required.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "name is required"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		fieldErrors["email"] = "invalid email address"
	}
	if strings.TrimSpace(req.Subject) == "" {
		fieldErrors["subject"] = "subject is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		fieldErrors["message"] = "message is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	contact, err := h.store.CreateContact(r.Context(), store.CreateContactParams{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("contact submission received", "contact_id", contact.ID, "email", contact.Email)
	WriteJSON(w, http.StatusOK, ContactSubmittedResponse{
		Message: i18n.T(lang(r), "contact.success"),
		ID:      contact.ID,
	})
}

// ListContacts returns all contact submissions, newest first. Admin
// only.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.store.ListContacts(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, contacts)
}
