// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// ListProjects returns projects ordered by creation date descending,
// each annotated with live like/comment counts. Draft rows are skipped
// unless includeDrafts is set. When viewerID is non-empty the UserLiked
// flag reflects that viewer.
func (s *SQLStore) ListProjects(ctx context.Context, viewerID string, includeDrafts bool) ([]model.ProjectWithStats, error) {
	query := `
		SELECT p.id, p.title, p.description, p.image, p.github_url, p.demo_url,
			p.technologies, p.category, p.tags, p.status, p.featured,
			p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM project_likes l WHERE l.project_id = p.id) AS likes_count,
			(SELECT COUNT(*) FROM project_comments c WHERE c.project_id = p.id) AS comments_count,
			(SELECT COUNT(*) FROM project_likes l WHERE l.project_id = p.id AND l.user_id = ?) AS user_liked
		FROM projects p`
	if !includeDrafts {
		query += ` WHERE p.status = 'published'`
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, viewerID)
	if err != nil {
		return nil, wrapErr("list projects", err)
	}
	defer rows.Close()

	var result []model.ProjectWithStats
	for rows.Next() {
		var p model.ProjectWithStats
		var technologies, tags string
		var userLiked int64
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.GithubURL, &p.DemoURL,
			&technologies, &p.Category, &tags, &p.Status, &p.Featured,
			&p.CreatedAt, &p.UpdatedAt,
			&p.LikesCount, &p.CommentsCount, &userLiked); err != nil {
			return nil, wrapErr("scan project", err)
		}
		p.Technologies = decodeList(technologies)
		p.Tags = decodeList(tags)
		p.UserLiked = userLiked > 0
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list projects", err)
	}
	return result, nil
}

// GetProject fetches a single project by ID.
func (s *SQLStore) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	var technologies, tags string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, image, github_url, demo_url,
			technologies, category, tags, status, featured, created_at, updated_at
		FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.GithubURL, &p.DemoURL,
			&technologies, &p.Category, &tags, &p.Status, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Project{}, wrapErr("get project", err)
	}
	p.Technologies = decodeList(technologies)
	p.Tags = decodeList(tags)
	return p, nil
}

// CreateProject inserts a new project.
func (s *SQLStore) CreateProject(ctx context.Context, params CreateProjectParams) (model.Project, error) {
	now := time.Now().UTC()
	p := model.Project{
		ID:           newID(),
		Title:        params.Title,
		Description:  params.Description,
		Image:        params.Image,
		GithubURL:    nullStr(params.GithubURL),
		DemoURL:      nullStr(params.DemoURL),
		Technologies: params.Technologies,
		Category:     params.Category,
		Tags:         params.Tags,
		Status:       params.Status,
		Featured:     params.Featured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Category == "" {
		p.Category = "web"
	}
	if p.Status == "" {
		p.Status = model.StatusPublished
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, image, github_url, demo_url,
			technologies, category, tags, status, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Image, p.GithubURL, p.DemoURL,
		encodeList(p.Technologies), p.Category, encodeList(p.Tags), p.Status, p.Featured,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return model.Project{}, wrapErr("create project", err)
	}
	return p, nil
}

// UpdateProject applies a partial update and refreshes updated_at.
func (s *SQLStore) UpdateProject(ctx context.Context, id string, params UpdateProjectParams) (model.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return model.Project{}, err
	}

	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Image != nil {
		p.Image = *params.Image
	}
	applyStr(&p.GithubURL, params.GithubURL)
	applyStr(&p.DemoURL, params.DemoURL)
	if params.Technologies != nil {
		p.Technologies = *params.Technologies
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Tags != nil {
		p.Tags = *params.Tags
	}
	if params.Status != nil {
		p.Status = *params.Status
	}
	if params.Featured != nil {
		p.Featured = *params.Featured
	}
	p.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE projects SET title = ?, description = ?, image = ?, github_url = ?,
			demo_url = ?, technologies = ?, category = ?, tags = ?, status = ?,
			featured = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, p.Image, p.GithubURL, p.DemoURL,
		encodeList(p.Technologies), p.Category, encodeList(p.Tags), p.Status,
		p.Featured, p.UpdatedAt, id)
	if err != nil {
		return model.Project{}, wrapErr("update project", err)
	}
	return p, nil
}

// DeleteProject removes a project; likes and comments cascade.
func (s *SQLStore) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete project", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleProjectLike atomically flips the like state for (project, user)
// and returns the resulting liked state. The delete-first approach plus
// the UNIQUE(project_id, user_id) constraint avoids the read-then-write
// race: a concurrent duplicate insert loses on the constraint.
func (s *SQLStore) ToggleProjectLike(ctx context.Context, projectID, userID string) (bool, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM project_likes WHERE project_id = ? AND user_id = ?`, projectID, userID)
	if err != nil {
		return false, wrapErr("toggle project like", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO project_likes (id, project_id, user_id, created_at)
		VALUES (?, ?, ?, ?)`,
		newID(), projectID, userID, time.Now().UTC())
	if err != nil {
		// Lost a race against another insert: the like exists.
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, wrapErr("toggle project like", err)
	}
	return true, nil
}

// ListProjectComments returns comments newest first, each hydrated with
// its author.
func (s *SQLStore) ListProjectComments(ctx context.Context, projectID string) ([]model.CommentWithUser, error) {
	return s.listComments(ctx, "project_comments", "project_id", projectID)
}

// AddProjectComment inserts a comment and returns it hydrated with the
// author.
func (s *SQLStore) AddProjectComment(ctx context.Context, projectID, userID, content string) (model.CommentWithUser, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return model.CommentWithUser{}, err
	}
	return s.addComment(ctx, "project_comments", "project_id", projectID, userID, content)
}
