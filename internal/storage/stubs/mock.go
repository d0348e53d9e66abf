package stubs

import (
	"context"
	"sort"
	"sync"

	"imagebot/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for
// testing and for running without ClickHouse
type MockDB struct {
	mu          sync.RWMutex
	generations []models.Generation
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		generations: make([]models.Generation, 0),
	}
}

// Initialize does nothing for mock DB
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// SaveGeneration records one generation attempt
func (m *MockDB) SaveGeneration(ctx context.Context, gen models.Generation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generations = append(m.generations, gen)
	return nil
}

// GetLastGenerations returns the most recent generations for a chat
func (m *MockDB) GetLastGenerations(ctx context.Context, chatID int64, limit int) ([]models.Generation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.Generation
	for _, gen := range m.generations {
		if gen.ChatID == chatID {
			matched = append(matched, gen)
		}
	}

	// Sort by creation time descending
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit > len(matched) {
		limit = len(matched)
	}

	return matched[:limit], nil
}

// Close does nothing for mock DB
func (m *MockDB) Close() error {
	return nil
}
