package profile

import (
	"context"
	"testing"

	"rightstep/internal/storage"
)

type fakeStore struct {
	data map[string]string
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{data: map[string]string{}}

	t.Run("LoadAbsent", func(t *testing.T) {
		p, err := Load(ctx, store)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if p != nil {
			t.Error("Expected nil profile when none is saved")
		}
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		in := &Profile{Name: "Ana", Sex: "F", Age: 34, Weight: 62.5, Height: 168}
		if err := Save(ctx, store, in); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		out, err := Load(ctx, store)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if out == nil {
			t.Fatal("Expected a profile after save")
		}
		if out.Name != "Ana" || out.Age != 34 || out.Weight != 62.5 {
			t.Errorf("Round trip mismatch: %+v", out)
		}
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		if err := Save(ctx, store, &Profile{}); err == nil {
			t.Error("Expected an error for an empty name")
		}
	})

	t.Run("CorruptProfile", func(t *testing.T) {
		store.data[storage.KeyUserData] = "{broken"
		if _, err := Load(ctx, store); err == nil {
			t.Error("Expected an error for a corrupt profile")
		}
	})
}
