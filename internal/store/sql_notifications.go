// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// ListNotifications returns a user's notifications, newest first.
func (s *SQLStore) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, entity_type, entity_id, from_user_id, message,
			is_read, created_at
		FROM notifications WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, wrapErr("list notifications", err)
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.EntityType, &n.EntityID,
			&n.FromUserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, wrapErr("scan notification", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list notifications", err)
	}
	return result, nil
}

// CreateNotification inserts a notification.
func (s *SQLStore) CreateNotification(ctx context.Context, params CreateNotificationParams) (model.Notification, error) {
	n := model.Notification{
		ID:         newID(),
		UserID:     params.UserID,
		Type:       params.Type,
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		FromUserID: nullStr(params.FromUserID),
		Message:    params.Message,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, entity_type, entity_id,
			from_user_id, message, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Type, n.EntityType, n.EntityID,
		n.FromUserID, n.Message, n.Read, n.CreatedAt)
	if err != nil {
		return model.Notification{}, wrapErr("create notification", err)
	}
	return n, nil
}

// MarkNotificationRead flags a notification as read. The userID guard
// keeps users from acknowledging each other's notifications.
func (s *SQLStore) MarkNotificationRead(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = ? WHERE id = ? AND user_id = ?`, true, id, userID)
	if err != nil {
		return wrapErr("mark notification read", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneReadNotifications removes read notifications created before the
// cutoff. Run periodically by the maintenance job.
func (s *SQLStore) PruneReadNotifications(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE is_read = ? AND created_at < ?`, true, olderThan)
	if err != nil {
		return 0, wrapErr("prune notifications", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
