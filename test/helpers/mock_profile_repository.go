package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/hideout-go/internal/domain/progress"
)

// MockProfileRepository is a test double for ProfileRepository. It stores
// snapshots so callers never share a *Profile with the repository.
type MockProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]progress.Snapshot // profileID -> snapshot

	SaveCalls int
	SaveErr   error
}

// NewMockProfileRepository creates a new mock profile repository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[string]progress.Snapshot),
	}
}

// AddProfile seeds a profile without counting as a Save call
func (m *MockProfileRepository) AddProfile(p *progress.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID()] = p.Snapshot()
}

// FindByID retrieves a profile by id
func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*progress.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", progress.ErrProfileNotFound, id)
	}
	return progress.FromSnapshot(s)
}

// FindByName retrieves a profile by name
func (m *MockProfileRepository) FindByName(ctx context.Context, name string) (*progress.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.profiles {
		if s.Name == name {
			return progress.FromSnapshot(s)
		}
	}
	return nil, fmt.Errorf("%w: %s", progress.ErrProfileNotFound, name)
}

// List returns all profiles sorted by name
func (m *MockProfileRepository) List(ctx context.Context) ([]*progress.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*progress.Profile, 0, len(m.profiles))
	for _, s := range m.profiles {
		p, err := progress.FromSnapshot(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Save persists profile state
func (m *MockProfileRepository) Save(ctx context.Context, p *progress.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.profiles[p.ID()] = p.Snapshot()
	return nil
}

// Delete removes a profile
func (m *MockProfileRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[id]; !ok {
		return fmt.Errorf("%w: %s", progress.ErrProfileNotFound, id)
	}
	delete(m.profiles, id)
	return nil
}

// Replace swaps replacedID for p. SaveErr leaves the store untouched.
func (m *MockProfileRepository) Replace(ctx context.Context, replacedID string, p *progress.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, ok := m.profiles[replacedID]; !ok {
		return fmt.Errorf("%w: %s", progress.ErrProfileNotFound, replacedID)
	}
	delete(m.profiles, replacedID)
	m.profiles[p.ID()] = p.Snapshot()
	return nil
}

// Count returns the number of stored profiles
func (m *MockProfileRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}
