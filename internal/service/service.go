package service

import (
	"context"

	"github.com/clothingadvisor/backend/internal/domain"
)

// RecommendationRepository is re-exported from domain for convenience
type RecommendationRepository = domain.RecommendationRepository

// WeatherProvider returns current conditions for a US zip code.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, zipCode string) (domain.WeatherData, error)
}

type healthChecker interface {
	Health(ctx context.Context) error
}

// EventPublisher receives every generated recommendation.
type EventPublisher interface {
	PublishRecommendation(ctx context.Context, rec domain.ClothingRecommendation) error
}

// Recommender turns weather into a clothing recommendation.
type Recommender interface {
	Generate(w domain.WeatherData) domain.ClothingRecommendation
}
