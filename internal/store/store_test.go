// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/rafaelabotelho/portfolio-go/internal/model"
)

// testSQLStore creates a SQLStore over a fresh in-memory SQLite
// database with the full schema applied.
func testSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	if err := Migrate(db, "sqlite3"); err != nil {
		db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return NewSQLStore(db)
}

// backends runs a test against both Store implementations; their
// semantics must not diverge.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	t.Run("sql", func(t *testing.T) { fn(t, testSQLStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
}

func mustCreateUser(t *testing.T, s Store, email, role string) model.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), CreateUserParams{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Provider:  "local",
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return user
}

func mustCreateProject(t *testing.T, s Store, title, status string) model.Project {
	t.Helper()
	project, err := s.CreateProject(context.Background(), CreateProjectParams{
		Title:        title,
		Description:  "A project about " + title,
		Image:        "/images/" + title + ".png",
		Technologies: []string{"go", "sqlite"},
		Category:     "web",
		Tags:         []string{"backend"},
		Status:       status,
	})
	if err != nil {
		t.Fatalf("CreateProject(%s): %v", title, err)
	}
	return project
}

func TestUserLifecycle(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		user := mustCreateUser(t, s, "rafaela@example.com", model.RoleUser)
		if user.ID == "" {
			t.Fatal("created user has no ID")
		}

		got, err := s.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if got.Email != "rafaela@example.com" {
			t.Errorf("Email = %q", got.Email)
		}

		byEmail, err := s.GetUserByEmail(ctx, "rafaela@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail: %v", err)
		}
		if byEmail.ID != user.ID {
			t.Errorf("GetUserByEmail returned a different user")
		}

		if _, err := s.GetUser(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetUser(missing) = %v, want ErrNotFound", err)
		}
	})
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		mustCreateUser(t, s, "taken@example.com", model.RoleUser)

		_, err := s.CreateUser(context.Background(), CreateUserParams{
			Email:    "taken@example.com",
			Role:     model.RoleUser,
			Provider: "local",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("duplicate email = %v, want ErrEmailTaken", err)
		}
	})
}

func TestGetAdmin(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		if _, err := s.GetAdmin(ctx); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetAdmin with no admin = %v, want ErrNotFound", err)
		}

		mustCreateUser(t, s, "visitor@example.com", model.RoleUser)
		admin := mustCreateUser(t, s, "owner@example.com", model.RoleAdmin)

		got, err := s.GetAdmin(ctx)
		if err != nil {
			t.Fatalf("GetAdmin: %v", err)
		}
		if got.ID != admin.ID {
			t.Errorf("GetAdmin returned %s, want %s", got.ID, admin.ID)
		}
		if !got.IsAdmin() {
			t.Error("GetAdmin returned a non-admin user")
		}
	})
}

func TestUpdateUserPartial(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := mustCreateUser(t, s, "update@example.com", model.RoleUser)

		newFirst := "Rafaela"
		updated, err := s.UpdateUser(ctx, user.ID, UpdateUserParams{FirstName: &newFirst})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}
		if updated.FirstName.String != "Rafaela" {
			t.Errorf("FirstName = %q, want Rafaela", updated.FirstName.String)
		}
		// Untouched field survives.
		if updated.LastName.String != "User" {
			t.Errorf("LastName = %q, want User (unchanged)", updated.LastName.String)
		}
	})
}

func TestProjectCRUD(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		project := mustCreateProject(t, s, "portfolio", "")
		if project.Status != model.StatusPublished {
			t.Errorf("default status = %q, want published", project.Status)
		}

		got, err := s.GetProject(ctx, project.ID)
		if err != nil {
			t.Fatalf("GetProject: %v", err)
		}
		if got.Title != "portfolio" {
			t.Errorf("Title = %q", got.Title)
		}
		if len(got.Technologies) != 2 {
			t.Errorf("Technologies = %v", got.Technologies)
		}

		newTitle := "portfolio v2"
		featured := true
		updated, err := s.UpdateProject(ctx, project.ID, UpdateProjectParams{
			Title:    &newTitle,
			Featured: &featured,
		})
		if err != nil {
			t.Fatalf("UpdateProject: %v", err)
		}
		if updated.Title != "portfolio v2" || !updated.Featured {
			t.Errorf("update not applied: %+v", updated)
		}
		// Untouched fields survive a partial update.
		if updated.Category != "web" {
			t.Errorf("Category = %q, want web (unchanged)", updated.Category)
		}

		if err := s.DeleteProject(ctx, project.ID); err != nil {
			t.Fatalf("DeleteProject: %v", err)
		}
		if _, err := s.GetProject(ctx, project.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetProject after delete = %v, want ErrNotFound", err)
		}
		if err := s.DeleteProject(ctx, project.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("double delete = %v, want ErrNotFound", err)
		}
	})
}

func TestListProjectsVisibility(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		mustCreateProject(t, s, "public-one", model.StatusPublished)
		mustCreateProject(t, s, "hidden-draft", model.StatusDraft)

		public, err := s.ListProjects(ctx, "", false)
		if err != nil {
			t.Fatalf("ListProjects: %v", err)
		}
		if len(public) != 1 || public[0].Title != "public-one" {
			t.Errorf("public list = %d items, want just public-one", len(public))
		}

		all, err := s.ListProjects(ctx, "", true)
		if err != nil {
			t.Fatalf("ListProjects(drafts): %v", err)
		}
		if len(all) != 2 {
			t.Errorf("admin list = %d items, want 2", len(all))
		}
	})
}

func TestListProjectsOrder(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		mustCreateProject(t, s, "older", model.StatusPublished)
		time.Sleep(5 * time.Millisecond)
		mustCreateProject(t, s, "newer", model.StatusPublished)

		list, err := s.ListProjects(ctx, "", false)
		if err != nil {
			t.Fatalf("ListProjects: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("len = %d, want 2", len(list))
		}
		if list[0].Title != "newer" || list[1].Title != "older" {
			t.Errorf("order = [%s, %s], want newest first", list[0].Title, list[1].Title)
		}
	})
}

func TestToggleProjectLike(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := mustCreateUser(t, s, "liker@example.com", model.RoleUser)
		project := mustCreateProject(t, s, "likeable", model.StatusPublished)

		liked, err := s.ToggleProjectLike(ctx, project.ID, user.ID)
		if err != nil {
			t.Fatalf("first toggle: %v", err)
		}
		if !liked {
			t.Error("first toggle should like")
		}

		list, err := s.ListProjects(ctx, user.ID, false)
		if err != nil {
			t.Fatalf("ListProjects: %v", err)
		}
		if list[0].LikesCount != 1 || !list[0].UserLiked {
			t.Errorf("after like: likesCount=%d userLiked=%v", list[0].LikesCount, list[0].UserLiked)
		}

		liked, err = s.ToggleProjectLike(ctx, project.ID, user.ID)
		if err != nil {
			t.Fatalf("second toggle: %v", err)
		}
		if liked {
			t.Error("second toggle should unlike")
		}

		list, _ = s.ListProjects(ctx, user.ID, false)
		if list[0].LikesCount != 0 || list[0].UserLiked {
			t.Errorf("after unlike: likesCount=%d userLiked=%v", list[0].LikesCount, list[0].UserLiked)
		}

		if _, err := s.ToggleProjectLike(ctx, "no-such-project", user.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("toggle on missing project = %v, want ErrNotFound", err)
		}
	})
}

func TestProjectComments(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := mustCreateUser(t, s, "commenter@example.com", model.RoleUser)
		project := mustCreateProject(t, s, "commented", model.StatusPublished)

		first, err := s.AddProjectComment(ctx, project.ID, user.ID, "first!")
		if err != nil {
			t.Fatalf("AddProjectComment: %v", err)
		}
		if first.User.FirstName != "Test" {
			t.Errorf("comment author not hydrated: %+v", first.User)
		}

		time.Sleep(5 * time.Millisecond)
		if _, err := s.AddProjectComment(ctx, project.ID, user.ID, "second"); err != nil {
			t.Fatalf("AddProjectComment: %v", err)
		}

		comments, err := s.ListProjectComments(ctx, project.ID)
		if err != nil {
			t.Fatalf("ListProjectComments: %v", err)
		}
		if len(comments) != 2 {
			t.Fatalf("len = %d, want 2", len(comments))
		}
		if comments[0].Content != "second" {
			t.Errorf("comments not newest first: %q", comments[0].Content)
		}

		if _, err := s.AddProjectComment(ctx, "no-such-project", user.ID, "hi"); !errors.Is(err, ErrNotFound) {
			t.Errorf("comment on missing project = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteProjectCascade(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := mustCreateUser(t, s, "cascade@example.com", model.RoleUser)
		project := mustCreateProject(t, s, "doomed", model.StatusPublished)

		if _, err := s.ToggleProjectLike(ctx, project.ID, user.ID); err != nil {
			t.Fatalf("ToggleProjectLike: %v", err)
		}
		if _, err := s.AddProjectComment(ctx, project.ID, user.ID, "gone soon"); err != nil {
			t.Fatalf("AddProjectComment: %v", err)
		}

		if err := s.DeleteProject(ctx, project.ID); err != nil {
			t.Fatalf("DeleteProject: %v", err)
		}

		comments, err := s.ListProjectComments(ctx, project.ID)
		if err != nil {
			t.Fatalf("ListProjectComments after delete: %v", err)
		}
		if len(comments) != 0 {
			t.Errorf("comments survived the delete: %d", len(comments))
		}
	})
}

func TestCommentsDropMissingAuthor(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := mustCreateUser(t, s, "ghost@example.com", model.RoleUser)
	project := mustCreateProject(t, s, "haunted", model.StatusPublished)
	if _, err := s.AddProjectComment(ctx, project.ID, user.ID, "still here?"); err != nil {
		t.Fatalf("AddProjectComment: %v", err)
	}

	// Drop the author out from under the comment. The relational
	// schema cascades user deletes onto comments, so listings must not
	// fabricate an empty author here either.
	s.mu.Lock()
	delete(s.users, user.ID)
	s.mu.Unlock()

	comments, err := s.ListProjectComments(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListProjectComments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("comment with missing author listed: %+v", comments)
	}
}

func TestAchievements(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := mustCreateUser(t, s, "fan@example.com", model.RoleUser)

		achievement, err := s.CreateAchievement(ctx, CreateAchievementParams{
			Title:        "AWS Certified",
			Description:  "Solutions Architect Associate",
			Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Category:     "certification",
			Organization: "AWS",
		})
		if err != nil {
			t.Fatalf("CreateAchievement: %v", err)
		}
		if achievement.Status != model.StatusPublished {
			t.Errorf("default status = %q, want published", achievement.Status)
		}

		liked, err := s.ToggleAchievementLike(ctx, achievement.ID, user.ID)
		if err != nil || !liked {
			t.Fatalf("ToggleAchievementLike = (%v, %v)", liked, err)
		}
		if _, err := s.AddAchievementComment(ctx, achievement.ID, user.ID, "parabéns!"); err != nil {
			t.Fatalf("AddAchievementComment: %v", err)
		}

		list, err := s.ListAchievements(ctx, user.ID, false)
		if err != nil {
			t.Fatalf("ListAchievements: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("len = %d, want 1", len(list))
		}
		if list[0].LikesCount != 1 || list[0].CommentsCount != 1 || !list[0].UserLiked {
			t.Errorf("stats = %+v", list[0])
		}

		newOrg := "Amazon Web Services"
		updated, err := s.UpdateAchievement(ctx, achievement.ID, UpdateAchievementParams{Organization: &newOrg})
		if err != nil {
			t.Fatalf("UpdateAchievement: %v", err)
		}
		if updated.Organization.String != newOrg {
			t.Errorf("Organization = %q", updated.Organization.String)
		}

		if err := s.DeleteAchievement(ctx, achievement.ID); err != nil {
			t.Fatalf("DeleteAchievement: %v", err)
		}
		if _, err := s.GetAchievement(ctx, achievement.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetAchievement after delete = %v", err)
		}
	})
}

func TestExperiences(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		older, err := s.CreateExperience(ctx, CreateExperienceParams{
			Title:       "Junior Developer",
			Company:     "First Corp",
			Description: "Learned the ropes",
			StartDate:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Status:      model.StatusPublished,
		})
		if err != nil {
			t.Fatalf("CreateExperience: %v", err)
		}

		newer, err := s.CreateExperience(ctx, CreateExperienceParams{
			Title:       "Senior Developer",
			Company:     "Second Corp",
			Description: "Leading a team",
			StartDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			Current:     true,
		})
		if err != nil {
			t.Fatalf("CreateExperience: %v", err)
		}

		list, err := s.ListExperiences(ctx, false)
		if err != nil {
			t.Fatalf("ListExperiences: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("len = %d, want 2", len(list))
		}
		if list[0].ID != newer.ID || list[1].ID != older.ID {
			t.Error("experiences not ordered by start date descending")
		}

		end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		current := false
		updated, err := s.UpdateExperience(ctx, newer.ID, UpdateExperienceParams{
			EndDate: &end,
			Current: &current,
		})
		if err != nil {
			t.Fatalf("UpdateExperience: %v", err)
		}
		if !updated.EndDate.Valid || updated.Current {
			t.Errorf("end date not applied: %+v", updated)
		}

		if err := s.DeleteExperience(ctx, older.ID); err != nil {
			t.Fatalf("DeleteExperience: %v", err)
		}
		if err := s.DeleteExperience(ctx, older.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("double delete = %v, want ErrNotFound", err)
		}
	})
}

func TestContacts(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		contact, err := s.CreateContact(ctx, CreateContactParams{
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Subject: "Oportunidade",
			Message: "Olá, gostei do seu portfólio!",
		})
		if err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
		if contact.ID == "" {
			t.Fatal("contact has no ID")
		}

		time.Sleep(5 * time.Millisecond)
		if _, err := s.CreateContact(ctx, CreateContactParams{
			Name: "Second", Email: "second@example.com", Subject: "Hi", Message: "Hello",
		}); err != nil {
			t.Fatalf("CreateContact: %v", err)
		}

		list, err := s.ListContacts(ctx)
		if err != nil {
			t.Fatalf("ListContacts: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("len = %d, want 2", len(list))
		}
		if list[0].Name != "Second" {
			t.Errorf("contacts not newest first: %q", list[0].Name)
		}
	})
}

func TestNotifications(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		owner := mustCreateUser(t, s, "owner@example.com", model.RoleAdmin)
		other := mustCreateUser(t, s, "other@example.com", model.RoleUser)

		created, err := s.CreateNotification(ctx, CreateNotificationParams{
			UserID:     owner.ID,
			Type:       model.NotificationLike,
			EntityType: model.EntityProject,
			EntityID:   "p1",
			FromUserID: other.ID,
			Message:    "Test User curtiu seu projeto",
		})
		if err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
		if created.Read {
			t.Error("new notification should be unread")
		}

		mine, err := s.ListNotifications(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListNotifications: %v", err)
		}
		if len(mine) != 1 {
			t.Fatalf("owner list = %d, want 1", len(mine))
		}

		theirs, err := s.ListNotifications(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListNotifications: %v", err)
		}
		if len(theirs) != 0 {
			t.Errorf("other user sees %d notifications, want 0", len(theirs))
		}

		// Only the recipient can mark it read.
		if err := s.MarkNotificationRead(ctx, created.ID, other.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("foreign mark-read = %v, want ErrNotFound", err)
		}
		if err := s.MarkNotificationRead(ctx, created.ID, owner.ID); err != nil {
			t.Fatalf("MarkNotificationRead: %v", err)
		}

		mine, _ = s.ListNotifications(ctx, owner.ID)
		if !mine[0].Read {
			t.Error("notification still unread after mark-read")
		}
	})
}

func TestPruneReadNotifications(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		owner := mustCreateUser(t, s, "prune@example.com", model.RoleAdmin)

		read, err := s.CreateNotification(ctx, CreateNotificationParams{
			UserID: owner.ID, Type: model.NotificationLike,
			EntityType: model.EntityProject, EntityID: "p1", Message: "old",
		})
		if err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
		if err := s.MarkNotificationRead(ctx, read.ID, owner.ID); err != nil {
			t.Fatalf("MarkNotificationRead: %v", err)
		}

		if _, err := s.CreateNotification(ctx, CreateNotificationParams{
			UserID: owner.ID, Type: model.NotificationLike,
			EntityType: model.EntityProject, EntityID: "p2", Message: "unread",
		}); err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}

		// A future cutoff covers everything created so far; only the
		// read notification may go.
		pruned, err := s.PruneReadNotifications(ctx, time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("PruneReadNotifications: %v", err)
		}
		if pruned != 1 {
			t.Errorf("pruned = %d, want 1", pruned)
		}

		left, _ := s.ListNotifications(ctx, owner.ID)
		if len(left) != 1 || left[0].Message != "unread" {
			t.Errorf("wrong notification pruned: %+v", left)
		}
	})
}
