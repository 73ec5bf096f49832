package db

import (
	"context"
	"errors"
	"testing"
)

func TestSummaryRepositoryIncrement(t *testing.T) {
	ctx := context.Background()
	repo := NewSummaryRepository(openTestDB(t))

	if err := repo.Increment(ctx, "class-a", 80); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if err := repo.Increment(ctx, "class-a", 60); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	summary, err := repo.Get(ctx, "class-a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if summary.TotalAssessments != 2 {
		t.Errorf("expected TotalAssessments 2, got %d", summary.TotalAssessments)
	}
	if summary.TotalScoreSum != 140 {
		t.Errorf("expected TotalScoreSum 140, got %v", summary.TotalScoreSum)
	}
	if summary.AverageScore() != 70 {
		t.Errorf("expected AverageScore 70, got %v", summary.AverageScore())
	}
	if summary.LastUpdated.IsZero() {
		t.Error("expected LastUpdated to be stamped")
	}
}

func TestSummaryRepositoryGetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewSummaryRepository(openTestDB(t))

	if _, err := repo.Get(ctx, "class-z"); !errors.Is(err, ErrSummaryNotFound) {
		t.Errorf("expected ErrSummaryNotFound, got %v", err)
	}
}

func TestSummaryRepositoryIncrementEmptyClass(t *testing.T) {
	ctx := context.Background()
	repo := NewSummaryRepository(openTestDB(t))

	if err := repo.Increment(ctx, "", 50); !errors.Is(err, ErrInvalidSummary) {
		t.Errorf("expected ErrInvalidSummary, got %v", err)
	}
}
