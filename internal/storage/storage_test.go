package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	store, err := Open(filepath.Join(t.TempDir(), "rightstep.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	t.Run("GetMissing", func(t *testing.T) {
		_, ok, err := store.Get(ctx, KeyProgramStartDate)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Expected key to be absent")
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		if err := store.Set(ctx, KeyLastSeenWeek, "3"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, ok, err := store.Get(ctx, KeyLastSeenWeek)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok {
			t.Fatal("Expected key to be present")
		}
		if value != "3" {
			t.Errorf("Expected '3', got '%s'", value)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := store.Set(ctx, KeyLastSeenWeek, "4"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, _, err := store.Get(ctx, KeyLastSeenWeek)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "4" {
			t.Errorf("Expected '4', got '%s'", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, KeyLastSeenWeek); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		_, ok, err := store.Get(ctx, KeyLastSeenWeek)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Expected key to be gone after delete")
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		if err := store.Delete(ctx, "neverExisted"); err != nil {
			t.Errorf("Deleting an absent key should not fail: %v", err)
		}
	})
}
