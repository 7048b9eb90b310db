// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

func writeStatus(w http.ResponseWriter, _ *http.Request, status int, _ string) {
	w.WriteHeader(status)
}

func requestWithUser(user *model.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user != nil {
		ctx := context.WithValue(req.Context(), ContextKeyUser, *user)
		req = req.WithContext(ctx)
	}
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGetUser(t *testing.T) {
	if GetUser(httptest.NewRequest(http.MethodGet, "/", nil)) != nil {
		t.Error("GetUser on anonymous request should be nil")
	}

	user := model.User{ID: "u1", Email: "user@example.com", Role: model.RoleUser}
	got := GetUser(requestWithUser(&user))
	if got == nil || got.ID != "u1" {
		t.Errorf("GetUser = %+v, want user u1", got)
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(writeStatus)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request = %d, want 401", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithUser(&model.User{ID: "u1", Role: model.RoleUser}))
	if rr.Code != http.StatusOK {
		t.Errorf("authenticated request = %d, want 200", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(writeStatus)(okHandler())

	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"regular user", &model.User{ID: "u1", Role: model.RoleUser}, http.StatusForbidden},
		{"admin", &model.User{ID: "a1", Role: model.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, requestWithUser(tt.user))
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
