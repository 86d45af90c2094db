package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

// MockStationProvider serves a fixed station snapshot and doubles as the
// item catalog.
type MockStationProvider struct {
	mu       sync.RWMutex
	stations []hideout.Station
	Err      error
}

// NewMockStationProvider creates a provider over stations
func NewMockStationProvider(stations []hideout.Station) *MockStationProvider {
	return &MockStationProvider{stations: stations}
}

// Stations returns the snapshot
func (m *MockStationProvider) Stations(ctx context.Context) ([]hideout.Station, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.stations, nil
}

// Item resolves an item referenced by any requirement
func (m *MockStationProvider) Item(ctx context.Context, itemID string) (hideout.Item, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := hideout.Catalog(m.stations)[itemID]
	return item, ok, nil
}
