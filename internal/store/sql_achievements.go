// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// ListAchievements mirrors ListProjects: creation date descending with
// live-computed counters.
func (s *SQLStore) ListAchievements(ctx context.Context, viewerID string, includeDrafts bool) ([]model.AchievementWithStats, error) {
	query := `
		SELECT a.id, a.title, a.description, a.image, a.date, a.category,
			a.certificate_url, a.organization, a.status, a.featured,
			a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM achievement_likes l WHERE l.achievement_id = a.id) AS likes_count,
			(SELECT COUNT(*) FROM achievement_comments c WHERE c.achievement_id = a.id) AS comments_count,
			(SELECT COUNT(*) FROM achievement_likes l WHERE l.achievement_id = a.id AND l.user_id = ?) AS user_liked
		FROM achievements a`
	if !includeDrafts {
		query += ` WHERE a.status = 'published'`
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, viewerID)
	if err != nil {
		return nil, wrapErr("list achievements", err)
	}
	defer rows.Close()

	var result []model.AchievementWithStats
	for rows.Next() {
		var a model.AchievementWithStats
		var userLiked int64
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Image, &a.Date, &a.Category,
			&a.CertificateURL, &a.Organization, &a.Status, &a.Featured,
			&a.CreatedAt, &a.UpdatedAt,
			&a.LikesCount, &a.CommentsCount, &userLiked); err != nil {
			return nil, wrapErr("scan achievement", err)
		}
		a.UserLiked = userLiked > 0
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list achievements", err)
	}
	return result, nil
}

// GetAchievement fetches a single achievement by ID.
func (s *SQLStore) GetAchievement(ctx context.Context, id string) (model.Achievement, error) {
	var a model.Achievement
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, image, date, category, certificate_url,
			organization, status, featured, created_at, updated_at
		FROM achievements WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.Image, &a.Date, &a.Category,
			&a.CertificateURL, &a.Organization, &a.Status, &a.Featured, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Achievement{}, wrapErr("get achievement", err)
	}
	return a, nil
}

// CreateAchievement inserts a new achievement.
func (s *SQLStore) CreateAchievement(ctx context.Context, params CreateAchievementParams) (model.Achievement, error) {
	now := time.Now().UTC()
	a := model.Achievement{
		ID:             newID(),
		Title:          params.Title,
		Description:    params.Description,
		Image:          nullStr(params.Image),
		Date:           params.Date,
		Category:       params.Category,
		CertificateURL: nullStr(params.CertificateURL),
		Organization:   nullStr(params.Organization),
		Status:         params.Status,
		Featured:       params.Featured,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if a.Category == "" {
		a.Category = "certification"
	}
	if a.Status == "" {
		a.Status = model.StatusPublished
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO achievements (id, title, description, image, date, category,
			certificate_url, organization, status, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, a.Image, a.Date, a.Category,
		a.CertificateURL, a.Organization, a.Status, a.Featured, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return model.Achievement{}, wrapErr("create achievement", err)
	}
	return a, nil
}

// UpdateAchievement applies a partial update and refreshes updated_at.
func (s *SQLStore) UpdateAchievement(ctx context.Context, id string, params UpdateAchievementParams) (model.Achievement, error) {
	a, err := s.GetAchievement(ctx, id)
	if err != nil {
		return model.Achievement{}, err
	}

	if params.Title != nil {
		a.Title = *params.Title
	}
	if params.Description != nil {
		a.Description = *params.Description
	}
	applyStr(&a.Image, params.Image)
	if params.Date != nil {
		a.Date = *params.Date
	}
	if params.Category != nil {
		a.Category = *params.Category
	}
	applyStr(&a.CertificateURL, params.CertificateURL)
	applyStr(&a.Organization, params.Organization)
	if params.Status != nil {
		a.Status = *params.Status
	}
	if params.Featured != nil {
		a.Featured = *params.Featured
	}
	a.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE achievements SET title = ?, description = ?, image = ?, date = ?,
			category = ?, certificate_url = ?, organization = ?, status = ?,
			featured = ?, updated_at = ?
		WHERE id = ?`,
		a.Title, a.Description, a.Image, a.Date, a.Category,
		a.CertificateURL, a.Organization, a.Status, a.Featured, a.UpdatedAt, id)
	if err != nil {
		return model.Achievement{}, wrapErr("update achievement", err)
	}
	return a, nil
}

// DeleteAchievement removes an achievement; likes and comments cascade.
func (s *SQLStore) DeleteAchievement(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete achievement", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleAchievementLike flips the like state for (achievement, user);
// same conditional delete/insert scheme as ToggleProjectLike.
func (s *SQLStore) ToggleAchievementLike(ctx context.Context, achievementID, userID string) (bool, error) {
	if _, err := s.GetAchievement(ctx, achievementID); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM achievement_likes WHERE achievement_id = ? AND user_id = ?`, achievementID, userID)
	if err != nil {
		return false, wrapErr("toggle achievement like", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO achievement_likes (id, achievement_id, user_id, created_at)
		VALUES (?, ?, ?, ?)`,
		newID(), achievementID, userID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, wrapErr("toggle achievement like", err)
	}
	return true, nil
}

// ListAchievementComments returns comments newest first with authors.
func (s *SQLStore) ListAchievementComments(ctx context.Context, achievementID string) ([]model.CommentWithUser, error) {
	return s.listComments(ctx, "achievement_comments", "achievement_id", achievementID)
}

// AddAchievementComment inserts a comment hydrated with its author.
func (s *SQLStore) AddAchievementComment(ctx context.Context, achievementID, userID, content string) (model.CommentWithUser, error) {
	if _, err := s.GetAchievement(ctx, achievementID); err != nil {
		return model.CommentWithUser{}, err
	}
	return s.addComment(ctx, "achievement_comments", "achievement_id", achievementID, userID, content)
}
