// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// MemoryStore implements Store with process-local maps. It mirrors the
// relational backend's semantics, including cascade deletes and the
// unique (entity, user) like pair. State is per-process: it is not a
// valid backend for multi-process deployments.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[string]model.User
	projects      map[string]model.Project
	achievements  map[string]model.Achievement
	experiences   map[string]model.Experience
	contacts      map[string]model.Contact
	notifications map[string]model.Notification

	// likes are keyed by entity ID, then user ID.
	projectLikes     map[string]map[string]model.Like
	achievementLikes map[string]map[string]model.Like

	// comments are kept per entity in insertion order.
	projectComments     map[string][]model.Comment
	achievementComments map[string][]model.Comment
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:               make(map[string]model.User),
		projects:            make(map[string]model.Project),
		achievements:        make(map[string]model.Achievement),
		experiences:         make(map[string]model.Experience),
		contacts:            make(map[string]model.Contact),
		notifications:       make(map[string]model.Notification),
		projectLikes:        make(map[string]map[string]model.Like),
		achievementLikes:    make(map[string]map[string]model.Like),
		projectComments:     make(map[string][]model.Comment),
		achievementComments: make(map[string][]model.Comment),
	}
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// GetUser fetches a user by ID.
func (s *MemoryStore) GetUser(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// GetUserByEmail fetches a user by email.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// GetAdmin fetches the admin account.
func (s *MemoryStore) GetAdmin(_ context.Context) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Role == model.RoleAdmin {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// CreateUser inserts a user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(_ context.Context, params CreateUserParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == params.Email {
			return model.User{}, ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	u := model.User{
		ID:              uuid.NewString(),
		Email:           params.Email,
		PasswordHash:    nullStr(params.PasswordHash),
		FirstName:       nullStr(params.FirstName),
		LastName:        nullStr(params.LastName),
		ProfileImageURL: nullStr(params.ProfileImageURL),
		Role:            params.Role,
		Provider:        params.Provider,
		ProviderID:      nullStr(params.ProviderID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.Provider == "" {
		u.Provider = "local"
	}
	s.users[u.ID] = u
	return u, nil
}

// UpdateUser applies a partial profile update.
func (s *MemoryStore) UpdateUser(_ context.Context, id string, params UpdateUserParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	applyStr(&u.FirstName, params.FirstName)
	applyStr(&u.LastName, params.LastName)
	applyStr(&u.ProfileImageURL, params.ProfileImageURL)
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

// ListProjects mirrors the relational query: creation date descending,
// drafts filtered unless requested, counters computed live.
func (s *MemoryStore) ListProjects(_ context.Context, viewerID string, includeDrafts bool) ([]model.ProjectWithStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.ProjectWithStats
	for _, p := range s.projects {
		if !includeDrafts && !p.IsPublished() {
			continue
		}
		likes := s.projectLikes[p.ID]
		_, userLiked := likes[viewerID]
		result = append(result, model.ProjectWithStats{
			Project:       p,
			LikesCount:    int64(len(likes)),
			CommentsCount: int64(len(s.projectComments[p.ID])),
			UserLiked:     viewerID != "" && userLiked,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetProject fetches a project by ID.
func (s *MemoryStore) GetProject(_ context.Context, id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, ErrNotFound
	}
	return p, nil
}

// CreateProject inserts a project.
func (s *MemoryStore) CreateProject(_ context.Context, params CreateProjectParams) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p := model.Project{
		ID:           uuid.NewString(),
		Title:        params.Title,
		Description:  params.Description,
		Image:        params.Image,
		GithubURL:    nullStr(params.GithubURL),
		DemoURL:      nullStr(params.DemoURL),
		Technologies: cloneList(params.Technologies),
		Category:     params.Category,
		Tags:         cloneList(params.Tags),
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
	s.projects[p.ID] = p
	return p, nil
}

// UpdateProject applies a partial update.
func (s *MemoryStore) UpdateProject(_ context.Context, id string, params UpdateProjectParams) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, ErrNotFound
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
		p.Technologies = cloneList(*params.Technologies)
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Tags != nil {
		p.Tags = cloneList(*params.Tags)
	}
	if params.Status != nil {
		p.Status = *params.Status
	}
	if params.Featured != nil {
		p.Featured = *params.Featured
	}
	p.UpdatedAt = time.Now().UTC()
	s.projects[id] = p
	return p, nil
}

// DeleteProject removes a project and cascades to its likes and comments.
func (s *MemoryStore) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.projects, id)
	delete(s.projectLikes, id)
	delete(s.projectComments, id)
	return nil
}

// ToggleProjectLike flips the like state under the store lock, which
// makes the pair lookup and mutation atomic.
func (s *MemoryStore) ToggleProjectLike(_ context.Context, projectID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; !ok {
		return false, ErrNotFound
	}
	likes := s.projectLikes[projectID]
	if likes == nil {
		likes = make(map[string]model.Like)
		s.projectLikes[projectID] = likes
	}
	if _, ok := likes[userID]; ok {
		delete(likes, userID)
		return false, nil
	}
	likes[userID] = model.Like{
		ID:        uuid.NewString(),
		EntityID:  projectID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return true, nil
}

// ListProjectComments returns comments newest first with authors.
func (s *MemoryStore) ListProjectComments(_ context.Context, projectID string) ([]model.CommentWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrateComments(s.projectComments[projectID]), nil
}

// AddProjectComment inserts a comment and returns it with its author.
func (s *MemoryStore) AddProjectComment(_ context.Context, projectID, userID, content string) (model.CommentWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; !ok {
		return model.CommentWithUser{}, ErrNotFound
	}
	return s.appendComment(s.projectComments, projectID, userID, content)
}

// ListAchievements mirrors ListProjects for achievements.
func (s *MemoryStore) ListAchievements(_ context.Context, viewerID string, includeDrafts bool) ([]model.AchievementWithStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.AchievementWithStats
	for _, a := range s.achievements {
		if !includeDrafts && !a.IsPublished() {
			continue
		}
		likes := s.achievementLikes[a.ID]
		_, userLiked := likes[viewerID]
		result = append(result, model.AchievementWithStats{
			Achievement:   a,
			LikesCount:    int64(len(likes)),
			CommentsCount: int64(len(s.achievementComments[a.ID])),
			UserLiked:     viewerID != "" && userLiked,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetAchievement fetches an achievement by ID.
func (s *MemoryStore) GetAchievement(_ context.Context, id string) (model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.achievements[id]
	if !ok {
		return model.Achievement{}, ErrNotFound
	}
	return a, nil
}

// CreateAchievement inserts an achievement.
func (s *MemoryStore) CreateAchievement(_ context.Context, params CreateAchievementParams) (model.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	a := model.Achievement{
		ID:             uuid.NewString(),
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
	s.achievements[a.ID] = a
	return a, nil
}

// UpdateAchievement applies a partial update.
func (s *MemoryStore) UpdateAchievement(_ context.Context, id string, params UpdateAchievementParams) (model.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.achievements[id]
	if !ok {
		return model.Achievement{}, ErrNotFound
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
	s.achievements[id] = a
	return a, nil
}

// DeleteAchievement removes an achievement and cascades.
func (s *MemoryStore) DeleteAchievement(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.achievements[id]; !ok {
		return ErrNotFound
	}
	delete(s.achievements, id)
	delete(s.achievementLikes, id)
	delete(s.achievementComments, id)
	return nil
}

// ToggleAchievementLike flips the like state for (achievement, user).
func (s *MemoryStore) ToggleAchievementLike(_ context.Context, achievementID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.achievements[achievementID]; !ok {
		return false, ErrNotFound
	}
	likes := s.achievementLikes[achievementID]
	if likes == nil {
		likes = make(map[string]model.Like)
		s.achievementLikes[achievementID] = likes
	}
	if _, ok := likes[userID]; ok {
		delete(likes, userID)
		return false, nil
	}
	likes[userID] = model.Like{
		ID:        uuid.NewString(),
		EntityID:  achievementID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return true, nil
}

// ListAchievementComments returns comments newest first with authors.
func (s *MemoryStore) ListAchievementComments(_ context.Context, achievementID string) ([]model.CommentWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrateComments(s.achievementComments[achievementID]), nil
}

// AddAchievementComment inserts a comment with its author.
func (s *MemoryStore) AddAchievementComment(_ context.Context, achievementID, userID, content string) (model.CommentWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.achievements[achievementID]; !ok {
		return model.CommentWithUser{}, ErrNotFound
	}
	return s.appendComment(s.achievementComments, achievementID, userID, content)
}

// ListExperiences returns experiences by start date descending.
func (s *MemoryStore) ListExperiences(_ context.Context, includeDrafts bool) ([]model.Experience, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Experience
	for _, e := range s.experiences {
		if !includeDrafts && e.Status != model.StatusPublished {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})
	return result, nil
}

// CreateExperience inserts an experience.
func (s *MemoryStore) CreateExperience(_ context.Context, params CreateExperienceParams) (model.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	e := model.Experience{
		ID:           uuid.NewString(),
		Title:        params.Title,
		Company:      params.Company,
		Description:  params.Description,
		StartDate:    params.StartDate,
		Location:     nullStr(params.Location),
		Technologies: cloneList(params.Technologies),
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
	s.experiences[e.ID] = e
	return e, nil
}

// UpdateExperience applies a partial update.
func (s *MemoryStore) UpdateExperience(_ context.Context, id string, params UpdateExperienceParams) (model.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.experiences[id]
	if !ok {
		return model.Experience{}, ErrNotFound
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
		e.Technologies = cloneList(*params.Technologies)
	}
	if params.Current != nil {
		e.Current = *params.Current
	}
	if params.Status != nil {
		e.Status = *params.Status
	}
	e.UpdatedAt = time.Now().UTC()
	s.experiences[id] = e
	return e, nil
}

// DeleteExperience removes an experience.
func (s *MemoryStore) DeleteExperience(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.experiences[id]; !ok {
		return ErrNotFound
	}
	delete(s.experiences, id)
	return nil
}

// CreateContact appends a submission.
func (s *MemoryStore) CreateContact(_ context.Context, params CreateContactParams) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Contact{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Email:     params.Email,
		Subject:   params.Subject,
		Message:   params.Message,
		CreatedAt: time.Now().UTC(),
	}
	s.contacts[c.ID] = c
	return c, nil
}

// ListContacts returns all submissions, newest first.
func (s *MemoryStore) ListContacts(_ context.Context) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Contact
	for _, c := range s.contacts {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListNotifications returns a user's notifications, newest first.
func (s *MemoryStore) ListNotifications(_ context.Context, userID string) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// CreateNotification inserts a notification.
func (s *MemoryStore) CreateNotification(_ context.Context, params CreateNotificationParams) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := model.Notification{
		ID:         uuid.NewString(),
		UserID:     params.UserID,
		Type:       params.Type,
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		FromUserID: nullStr(params.FromUserID),
		Message:    params.Message,
		CreatedAt:  time.Now().UTC(),
	}
	s.notifications[n.ID] = n
	return n, nil
}

// MarkNotificationRead flags a notification as read.
func (s *MemoryStore) MarkNotificationRead(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.Read = true
	s.notifications[id] = n
	return nil
}

// PruneReadNotifications removes read notifications created before the cutoff.
func (s *MemoryStore) PruneReadNotifications(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pruned int64
	for id, n := range s.notifications {
		if n.Read && n.CreatedAt.Before(olderThan) {
			delete(s.notifications, id)
			pruned++
		}
	}
	return pruned, nil
}

// appendComment expects the write lock to be held.
func (s *MemoryStore) appendComment(comments map[string][]model.Comment, entityID, userID, content string) (model.CommentWithUser, error) {
	author, ok := s.users[userID]
	if !ok {
		return model.CommentWithUser{}, ErrNotFound
	}
	c := model.Comment{
		ID:        uuid.NewString(),
		EntityID:  entityID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	comments[entityID] = append(comments[entityID], c)
	return model.CommentWithUser{
		Comment: c,
		User: model.CommentAuthor{
			ID:              author.ID,
			FirstName:       author.FirstName.String,
			LastName:        author.LastName.String,
			ProfileImageURL: author.ProfileImageURL.String,
		},
	}, nil
}

// hydrateComments expects at least the read lock to be held.
func (s *MemoryStore) hydrateComments(comments []model.Comment) []model.CommentWithUser {
	result := make([]model.CommentWithUser, 0, len(comments))
	// Stored oldest first; returned newest first like the SQL backend.
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		author, ok := s.users[c.UserID]
		if !ok {
			// The SQL backend's author join drops such comments too.
			continue
		}
		result = append(result, model.CommentWithUser{
			Comment: c,
			User: model.CommentAuthor{
				ID:              author.ID,
				FirstName:       author.FirstName.String,
				LastName:        author.LastName.String,
				ProfileImageURL: author.ProfileImageURL.String,
			},
		})
	}
	return result
}

func cloneList(items []string) []string {
	if items == nil {
		return []string{}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
