package userrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yijuchen/cwabot/internal/domain/user"
)

// MemoryRepository provides an in-memory profile store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]user.Profile
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string]user.Profile)}
}

// Get fetches a profile by LINE user ID.
func (r *MemoryRepository) Get(_ context.Context, id string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	return profile, ok, nil
}

// Upsert stores the profile.
func (r *MemoryRepository) Upsert(_ context.Context, profile user.Profile) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.ID] = profile
	return profile, nil
}

// PushTargets lists the profiles subscribed to one push stream, ordered by ID
// for deterministic sends.
func (r *MemoryRepository) PushTargets(_ context.Context, kind user.PushKind) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var targets []user.Profile
	for _, profile := range r.profiles {
		if profile.Subscribed(kind) {
			targets = append(targets, profile)
		}
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].ID < targets[j].ID })
	return targets, nil
}

var _ user.Repository = (*MemoryRepository)(nil)
