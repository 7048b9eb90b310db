// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// ListExperiences returns experiences ordered by start date descending.
func (s *SQLStore) ListExperiences(ctx context.Context, includeDrafts bool) ([]model.Experience, error) {
	query := `
		SELECT id, title, company, description, start_date, end_date, location,
			technologies, current, status, created_at, updated_at
		FROM experiences`
	if !includeDrafts {
		query += ` WHERE status = 'published'`
	}
	query += ` ORDER BY start_date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("list experiences", err)
	}
	defer rows.Close()

	var result []model.Experience
	for rows.Next() {
		var e model.Experience
		var technologies string
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Description, &e.StartDate,
			&e.EndDate, &e.Location, &technologies, &e.Current, &e.Status,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, wrapErr("scan experience", err)
		}
		e.Technologies = decodeList(technologies)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list experiences", err)
	}
	return result, nil
}

// CreateExperience inserts a new experience.
func (s *SQLStore) CreateExperience(ctx context.Context, params CreateExperienceParams) (model.Experience, error) {
	now := time.Now().UTC()
	e := model.Experience{
		ID:           newID(),
		Title:        params.Title,
		Company:      params.Company,
		Description:  params.Description,
		StartDate:    params.StartDate,
		Location:     nullStr(params.Location),
		Technologies: params.Technologies,
		Current:      params.Current,
		Status:       params.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if params.EndDate != nil {
		e.EndDate = sql.NullTime{Time: *params.EndDate, Valid: true}
	}
	if e.Status == "" {
		e.Status = model.StatusPublished
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO experiences (id, title, company, description, start_date, end_date,
			location, technologies, current, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Company, e.Description, e.StartDate, e.EndDate,
		e.Location, encodeList(e.Technologies), e.Current, e.Status, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return model.Experience{}, wrapErr("create experience", err)
	}
	return e, nil
}

// UpdateExperience applies a partial update and refreshes updated_at.
func (s *SQLStore) UpdateExperience(ctx context.Context, id string, params UpdateExperienceParams) (model.Experience, error) {
	e, err := s.getExperience(ctx, id)
	if err != nil {
		return model.Experience{}, err
	}

	if params.Title != nil {
		e.Title = *params.Title
	}
	if params.Company != nil {
		e.Company = *params.Company
	}
	if params.Description != nil {
		e.Description = *params.Description
	}
	if params.StartDate != nil {
		e.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		e.EndDate = sql.NullTime{Time: *params.EndDate, Valid: true}
	}
	applyStr(&e.Location, params.Location)
	if params.Technologies != nil {
		e.Technologies = *params.Technologies
	}
	if params.Current != nil {
		e.Current = *params.Current
	}
	if params.Status != nil {
		e.Status = *params.Status
	}
	e.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE experiences SET title = ?, company = ?, description = ?, start_date = ?,
			end_date = ?, location = ?, technologies = ?, current = ?, status = ?,
			updated_at = ?
		WHERE id = ?`,
		e.Title, e.Company, e.Description, e.StartDate, e.EndDate, e.Location,
		encodeList(e.Technologies), e.Current, e.Status, e.UpdatedAt, id)
	if err != nil {
		return model.Experience{}, wrapErr("update experience", err)
	}
	return e, nil
}

// DeleteExperience removes an experience.
func (s *SQLStore) DeleteExperience(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete experience", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) getExperience(ctx context.Context, id string) (model.Experience, error) {
	var e model.Experience
	var technologies string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, company, description, start_date, end_date, location,
			technologies, current, status, created_at, updated_at
		FROM experiences WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Company, &e.Description, &e.StartDate, &e.EndDate,
			&e.Location, &technologies, &e.Current, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Experience{}, wrapErr("get experience", err)
	}
	e.Technologies = decodeList(technologies)
	return e, nil
}
