package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/hideout-go/internal/domain/market"
)

// MockPriceRepository is an in-memory PriceRepository
type MockPriceRepository struct {
	mu     sync.RWMutex
	prices map[market.GameMode]map[string]market.Price
}

// NewMockPriceRepository creates a new mock price repository
func NewMockPriceRepository() *MockPriceRepository {
	return &MockPriceRepository{
		prices: make(map[market.GameMode]map[string]market.Price),
	}
}

// FindByMode returns a copy of the partition for mode
func (m *MockPriceRepository) FindByMode(ctx context.Context, mode market.GameMode) (map[string]market.Price, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]market.Price, len(m.prices[mode]))
	for k, v := range m.prices[mode] {
		out[k] = v
	}
	return out, nil
}

// ReplaceMode replaces the partition for mode
func (m *MockPriceRepository) ReplaceMode(ctx context.Context, mode market.GameMode, prices []market.Price) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	partition := make(map[string]market.Price, len(prices))
	for _, p := range prices {
		partition[p.NormalizedName] = p
	}
	m.prices[mode] = partition
	return nil
}

// SetPrice stores a single price, creating the partition if needed
func (m *MockPriceRepository) SetPrice(p market.Price) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prices[p.GameMode] == nil {
		m.prices[p.GameMode] = make(map[string]market.Price)
	}
	m.prices[p.GameMode][p.NormalizedName] = p
}
