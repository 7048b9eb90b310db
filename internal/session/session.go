// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package session configures the server-side session manager.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Lifetime is how long a session stays valid without re-login.
const Lifetime = 7 * 24 * time.Hour

// New creates a session manager backed by the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := newManager(isDev)
	sm.Store = sqlite3store.New(db)
	return sm
}

// NewMemory creates a session manager with the in-process store, used
// when the content database is MySQL or the memory backend is active.
// Sessions do not survive a restart in this mode.
func NewMemory(isDev bool) *scs.SessionManager {
	return newManager(isDev)
}

func newManager(isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	return sm
}
