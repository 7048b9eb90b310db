// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SQLStore implements Store on top of database/sql. It works against
// SQLite and MySQL; the schema lives in migrations/.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a SQLStore over an open database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// DB exposes the underlying handle (session store, health checks).
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Ping reports database health.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func newID() string {
	return uuid.NewString()
}

// encodeList stores a string slice as a JSON column value.
func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// decodeList parses a JSON column value back into a string slice.
// Malformed data degrades to an empty list rather than failing the row.
func decodeList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

// isUniqueViolation detects unique-constraint errors from either driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // modernc/mattn sqlite
		strings.Contains(msg, "constraint failed: UNIQUE") ||
		strings.Contains(msg, "Duplicate entry") // mysql
}

// wrapErr converts driver errors into the shared sentinel taxonomy.
// sql.ErrNoRows becomes ErrNotFound; everything else is an
// infrastructure failure.
func wrapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func applyStr(dst *sql.NullString, src *string) {
	if src != nil {
		*dst = nullStr(*src)
	}
}
