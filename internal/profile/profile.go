package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"rightstep/internal/storage"
)

// Profile is the registration data collected by the onboarding wizard.
type Profile struct {
	Name   string  `json:"name"`
	Sex    string  `json:"sex"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

// Store is the slice of persisted storage the profile layer needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Load reads the persisted profile. An absent profile is not an error:
// it returns nil to mean "not registered yet".
func Load(ctx context.Context, store Store) (*Profile, error) {
	raw, ok, err := store.Get(ctx, storage.KeyUserData)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// Save persists the profile under the userData key.
func Save(ctx context.Context, store Store, p *Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name must not be empty")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := store.Set(ctx, storage.KeyUserData, string(data)); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}
