package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/clothingadvisor/backend/internal/domain"
)

// mockCapacity bounds the in-memory history.
const mockCapacity = 500

// MockRepository implements domain.RecommendationRepository in memory for testing/demo mode
type MockRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []domain.RecommendationRecord
	now    func() time.Time
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{now: time.Now}
}

// SaveRecommendation keeps rec in memory, dropping the oldest entry at capacity
func (r *MockRepository) SaveRecommendation(ctx context.Context, rec domain.ClothingRecommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.items = append(r.items, domain.RecommendationRecord{
		ID:             r.nextID,
		ZipCode:        rec.Weather.ZipCode,
		Recommendation: rec,
		CreatedAt:      r.now().UTC(),
	})
	if len(r.items) > mockCapacity {
		r.items = r.items[len(r.items)-mockCapacity:]
	}
	return nil
}

// GetRecentRecommendations returns stored records in [from, to], newest first
func (r *MockRepository) GetRecentRecommendations(ctx context.Context, from, to time.Time) ([]domain.RecommendationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]domain.RecommendationRecord, 0)
	for i := len(r.items) - 1; i >= 0 && len(results) < 100; i-- {
		it := r.items[i]
		if it.CreatedAt.Before(from) || it.CreatedAt.After(to) {
			continue
		}
		results = append(results, it)
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
