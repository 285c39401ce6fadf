package domain

import (
	"context"
	"time"
)

// RecommendationRepository defines the interface for recommendation persistence.
// The domain owns the interface; storage packages implement it.
type RecommendationRepository interface {
	// SaveRecommendation persists a generated recommendation
	SaveRecommendation(ctx context.Context, rec ClothingRecommendation) error

	// GetRecentRecommendations retrieves recommendations created within [from, to]
	GetRecentRecommendations(ctx context.Context, from, to time.Time) ([]RecommendationRecord, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
