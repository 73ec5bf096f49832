package db

import (
	"context"
	"errors"
	"testing"

	"github.com/sclera-app/sclera/internal/models"
)

func TestUserRepositoryCreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &models.User{
		Name:        "Asha",
		AccountType: models.AccountTypeStudent,
		ClassIDs:    []string{"class-a", "class-b"},
		Timezone:    "Asia/Kolkata",
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == "" {
		t.Error("expected ID to be set")
	}

	retrieved, err := repo.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if retrieved.Name != "Asha" {
		t.Errorf("expected Name 'Asha', got %s", retrieved.Name)
	}
	if len(retrieved.ClassIDs) != 2 || retrieved.ClassIDs[0] != "class-a" {
		t.Errorf("expected class ids [class-a class-b], got %v", retrieved.ClassIDs)
	}
	if retrieved.Timezone != "Asia/Kolkata" {
		t.Errorf("expected timezone Asia/Kolkata, got %s", retrieved.Timezone)
	}
}

func TestUserRepositoryGetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	if _, err := repo.GetUser(ctx, "nope"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryExamResults(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &models.User{Name: "Ravi"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	result := &models.ExamResult{
		UserID:     user.ID,
		Subject:    "Physics",
		Percentage: 82.5,
	}
	if err := repo.CreateExamResult(ctx, result); err != nil {
		t.Fatalf("CreateExamResult: %v", err)
	}

	retrieved, err := repo.GetExamResult(ctx, result.ID)
	if err != nil {
		t.Fatalf("GetExamResult: %v", err)
	}
	if retrieved.Percentage != 82.5 {
		t.Errorf("expected Percentage 82.5, got %v", retrieved.Percentage)
	}
	if retrieved.UserID != user.ID {
		t.Errorf("expected UserID %s, got %s", user.ID, retrieved.UserID)
	}
}

func TestUserRepositoryUpsertStudySession(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &models.User{Name: "Meera"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	session := &models.StudySession{
		UserID:          user.ID,
		Subject:         "Chemistry",
		DurationMinutes: 25,
	}
	if err := repo.UpsertStudySession(ctx, session); err != nil {
		t.Fatalf("UpsertStudySession: %v", err)
	}

	// Update in place through the same ID.
	session.DurationMinutes = 50
	if err := repo.UpsertStudySession(ctx, session); err != nil {
		t.Fatalf("UpsertStudySession update: %v", err)
	}

	retrieved, err := repo.GetStudySession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetStudySession: %v", err)
	}
	if retrieved.DurationMinutes != 50 {
		t.Errorf("expected DurationMinutes 50, got %d", retrieved.DurationMinutes)
	}
}
