// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// FallbackStore wraps a primary (relational) Store and degrades to an
// in-memory Store when the primary reports an infrastructure failure.
// Unlike a one-way trip, the breaker is half-open: Probe pings the
// primary periodically and restores it once healthy. While tripped,
// writes land in the memory store only, so recovery loses them; the
// trade-off is availability for a single-owner portfolio site.
type FallbackStore struct {
	primary  Store
	fallback Store

	mu        sync.RWMutex
	tripped   bool
	trippedAt time.Time
	logger    *slog.Logger
}

// NewFallbackStore wraps primary with an in-memory fallback.
func NewFallbackStore(primary Store, logger *slog.Logger) *FallbackStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStore{
		primary:  primary,
		fallback: NewMemoryStore(),
		logger:   logger,
	}
}

// Tripped reports whether requests are being served from memory.
func (f *FallbackStore) Tripped() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tripped
}

// Probe checks primary health and closes the breaker when it recovers.
// Wired to a periodic job; safe to call at any time.
func (f *FallbackStore) Probe(ctx context.Context) {
	if !f.Tripped() {
		return
	}
	if err := f.primary.Ping(ctx); err != nil {
		f.logger.Warn("storage probe failed, staying on memory fallback", "error", err)
		return
	}
	f.mu.Lock()
	downFor := time.Since(f.trippedAt)
	f.tripped = false
	f.mu.Unlock()
	f.logger.Info("database recovered, leaving memory fallback", "downtime", downFor.Round(time.Second))
}

// trip opens the breaker on the first infrastructure failure.
func (f *FallbackStore) trip(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tripped {
		return
	}
	f.tripped = true
	f.trippedAt = time.Now()
	f.logger.Error("database operation failed, switching to memory fallback", "error", err)
}

// active returns the store to route the next call to.
func (f *FallbackStore) active() Store {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.tripped {
		return f.fallback
	}
	return f.primary
}

// call routes an operation, tripping on infrastructure errors and
// retrying the one failed call against the memory store.
func call[T any](f *FallbackStore, op func(Store) (T, error)) (T, error) {
	st := f.active()
	out, err := op(st)
	if err != nil && st == f.primary && errors.Is(err, ErrUnavailable) {
		f.trip(err)
		return op(f.fallback)
	}
	return out, err
}

func callErr(f *FallbackStore, op func(Store) error) error {
	_, err := call(f, func(s Store) (struct{}, error) {
		return struct{}{}, op(s)
	})
	return err
}

// Ping reports the health of whichever backend is active.
func (f *FallbackStore) Ping(ctx context.Context) error {
	return f.active().Ping(ctx)
}

// Close closes both backends.
func (f *FallbackStore) Close() error {
	ferr := f.fallback.Close()
	if err := f.primary.Close(); err != nil {
		return err
	}
	return ferr
}

func (f *FallbackStore) GetUser(ctx context.Context, id string) (model.User, error) {
	return call(f, func(s Store) (model.User, error) { return s.GetUser(ctx, id) })
}

func (f *FallbackStore) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return call(f, func(s Store) (model.User, error) { return s.GetUserByEmail(ctx, email) })
}

func (f *FallbackStore) GetAdmin(ctx context.Context) (model.User, error) {
	return call(f, func(s Store) (model.User, error) { return s.GetAdmin(ctx) })
}

func (f *FallbackStore) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	return call(f, func(s Store) (model.User, error) { return s.CreateUser(ctx, params) })
}

func (f *FallbackStore) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (model.User, error) {
	return call(f, func(s Store) (model.User, error) { return s.UpdateUser(ctx, id, params) })
}

func (f *FallbackStore) ListProjects(ctx context.Context, viewerID string, includeDrafts bool) ([]model.ProjectWithStats, error) {
	return call(f, func(s Store) ([]model.ProjectWithStats, error) { return s.ListProjects(ctx, viewerID, includeDrafts) })
}

func (f *FallbackStore) GetProject(ctx context.Context, id string) (model.Project, error) {
	return call(f, func(s Store) (model.Project, error) { return s.GetProject(ctx, id) })
}

func (f *FallbackStore) CreateProject(ctx context.Context, params CreateProjectParams) (model.Project, error) {
	return call(f, func(s Store) (model.Project, error) { return s.CreateProject(ctx, params) })
}

func (f *FallbackStore) UpdateProject(ctx context.Context, id string, params UpdateProjectParams) (model.Project, error) {
	return call(f, func(s Store) (model.Project, error) { return s.UpdateProject(ctx, id, params) })
}

func (f *FallbackStore) DeleteProject(ctx context.Context, id string) error {
	return callErr(f, func(s Store) error { return s.DeleteProject(ctx, id) })
}

func (f *FallbackStore) ToggleProjectLike(ctx context.Context, projectID, userID string) (bool, error) {
	return call(f, func(s Store) (bool, error) { return s.ToggleProjectLike(ctx, projectID, userID) })
}

func (f *FallbackStore) ListProjectComments(ctx context.Context, projectID string) ([]model.CommentWithUser, error) {
	return call(f, func(s Store) ([]model.CommentWithUser, error) { return s.ListProjectComments(ctx, projectID) })
}

func (f *FallbackStore) AddProjectComment(ctx context.Context, projectID, userID, content string) (model.CommentWithUser, error) {
	return call(f, func(s Store) (model.CommentWithUser, error) {
		return s.AddProjectComment(ctx, projectID, userID, content)
	})
}

func (f *FallbackStore) ListAchievements(ctx context.Context, viewerID string, includeDrafts bool) ([]model.AchievementWithStats, error) {
	return call(f, func(s Store) ([]model.AchievementWithStats, error) {
		return s.ListAchievements(ctx, viewerID, includeDrafts)
	})
}

func (f *FallbackStore) GetAchievement(ctx context.Context, id string) (model.Achievement, error) {
	return call(f, func(s Store) (model.Achievement, error) { return s.GetAchievement(ctx, id) })
}

func (f *FallbackStore) CreateAchievement(ctx context.Context, params CreateAchievementParams) (model.Achievement, error) {
	return call(f, func(s Store) (model.Achievement, error) { return s.CreateAchievement(ctx, params) })
}

func (f *FallbackStore) UpdateAchievement(ctx context.Context, id string, params UpdateAchievementParams) (model.Achievement, error) {
	return call(f, func(s Store) (model.Achievement, error) { return s.UpdateAchievement(ctx, id, params) })
}

func (f *FallbackStore) DeleteAchievement(ctx context.Context, id string) error {
	return callErr(f, func(s Store) error { return s.DeleteAchievement(ctx, id) })
}

func (f *FallbackStore) ToggleAchievementLike(ctx context.Context, achievementID, userID string) (bool, error) {
	return call(f, func(s Store) (bool, error) { return s.ToggleAchievementLike(ctx, achievementID, userID) })
}

func (f *FallbackStore) ListAchievementComments(ctx context.Context, achievementID string) ([]model.CommentWithUser, error) {
	return call(f, func(s Store) ([]model.CommentWithUser, error) { return s.ListAchievementComments(ctx, achievementID) })
}

func (f *FallbackStore) AddAchievementComment(ctx context.Context, achievementID, userID, content string) (model.CommentWithUser, error) {
	return call(f, func(s Store) (model.CommentWithUser, error) {
		return s.AddAchievementComment(ctx, achievementID, userID, content)
	})
}

func (f *FallbackStore) ListExperiences(ctx context.Context, includeDrafts bool) ([]model.Experience, error) {
	return call(f, func(s Store) ([]model.Experience, error) { return s.ListExperiences(ctx, includeDrafts) })
}

func (f *FallbackStore) CreateExperience(ctx context.Context, params CreateExperienceParams) (model.Experience, error) {
	return call(f, func(s Store) (model.Experience, error) { return s.CreateExperience(ctx, params) })
}

func (f *FallbackStore) UpdateExperience(ctx context.Context, id string, params UpdateExperienceParams) (model.Experience, error) {
	return call(f, func(s Store) (model.Experience, error) { return s.UpdateExperience(ctx, id, params) })
}

func (f *FallbackStore) DeleteExperience(ctx context.Context, id string) error {
	return callErr(f, func(s Store) error { return s.DeleteExperience(ctx, id) })
}

func (f *FallbackStore) CreateContact(ctx context.Context, params CreateContactParams) (model.Contact, error) {
	return call(f, func(s Store) (model.Contact, error) { return s.CreateContact(ctx, params) })
}

func (f *FallbackStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return call(f, func(s Store) ([]model.Contact, error) { return s.ListContacts(ctx) })
}

func (f *FallbackStore) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	return call(f, func(s Store) ([]model.Notification, error) { return s.ListNotifications(ctx, userID) })
}

func (f *FallbackStore) CreateNotification(ctx context.Context, params CreateNotificationParams) (model.Notification, error) {
	return call(f, func(s Store) (model.Notification, error) { return s.CreateNotification(ctx, params) })
}

func (f *FallbackStore) MarkNotificationRead(ctx context.Context, id, userID string) error {
	return callErr(f, func(s Store) error { return s.MarkNotificationRead(ctx, id, userID) })
}

func (f *FallbackStore) PruneReadNotifications(ctx context.Context, olderThan time.Time) (int64, error) {
	return call(f, func(s Store) (int64, error) { return s.PruneReadNotifications(ctx, olderThan) })
}
