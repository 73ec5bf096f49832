package db

import (
	"context"
	"errors"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func TestPrefsRepositorySetGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPrefsRepository(openTestDB(t))

	if err := repo.Set(ctx, PrefVisited, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, err := repo.Get(ctx, PrefVisited)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "true" {
		t.Errorf("expected \"true\", got %q", value)
	}

	// Overwrite
	if err := repo.Set(ctx, PrefVisited, "false"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	value, err = repo.Get(ctx, PrefVisited)
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if value != "false" {
		t.Errorf("expected \"false\", got %q", value)
	}
}

func TestPrefsRepositoryGetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewPrefsRepository(openTestDB(t))

	if _, err := repo.Get(ctx, PrefTutorialCompleted); !errors.Is(err, ErrPrefNotFound) {
		t.Errorf("expected ErrPrefNotFound, got %v", err)
	}
}

func TestPrefsRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewPrefsRepository(openTestDB(t))

	if err := repo.Set(ctx, PrefTutorialSkipped, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Delete(ctx, PrefTutorialSkipped); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, PrefTutorialSkipped); !errors.Is(err, ErrPrefNotFound) {
		t.Errorf("expected ErrPrefNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := repo.Delete(ctx, PrefTutorialSkipped); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

func TestPrefsRepositoryIsTrue(t *testing.T) {
	ctx := context.Background()
	repo := NewPrefsRepository(openTestDB(t))

	set, err := repo.IsTrue(ctx, PrefVisited)
	if err != nil {
		t.Fatalf("IsTrue: %v", err)
	}
	if set {
		t.Error("expected absent key to read false")
	}

	if err := repo.Set(ctx, PrefVisited, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	set, err = repo.IsTrue(ctx, PrefVisited)
	if err != nil {
		t.Fatalf("IsTrue: %v", err)
	}
	if !set {
		t.Error("expected key to read true")
	}
}
