package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clothingadvisor/backend/internal/domain"
)

// MaxBatchSize caps the number of zip codes in one batch request.
const MaxBatchSize = 10

// ErrBatchTooLarge is returned when a batch exceeds MaxBatchSize.
var ErrBatchTooLarge = fmt.Errorf("batch exceeds %d zip codes", MaxBatchSize)

// ErrInvalidHours is returned when a history window is out of range.
var ErrInvalidHours = errors.New("hours must be between 1 and 720")

// Options tunes an AdvisorService.
type Options struct {
	// ResponseTimeThreshold is the latency above which a request is logged as slow.
	ResponseTimeThreshold time.Duration
	// BatchConcurrency bounds concurrent weather lookups in RecommendBatch.
	BatchConcurrency int
}

// AdvisorService fetches weather, generates recommendations and records them.
type AdvisorService struct {
	weather   WeatherProvider
	advisor   Recommender
	repo      RecommendationRepository
	publisher EventPublisher
	logger    *slog.Logger
	opts      Options
	now       func() time.Time

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewAdvisorService creates a new advisor service
func NewAdvisorService(
	weather WeatherProvider,
	advisor Recommender,
	repo RecommendationRepository,
	publisher EventPublisher,
	logger *slog.Logger,
	opts Options,
) *AdvisorService {
	if opts.ResponseTimeThreshold <= 0 {
		opts.ResponseTimeThreshold = 5 * time.Second
	}
	if opts.BatchConcurrency < 1 {
		opts.BatchConcurrency = 1
	}
	return &AdvisorService{
		weather:   weather,
		advisor:   advisor,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *AdvisorService) WaitBackground() {
	s.wgBg.Wait()
}

// ResponseTimeThreshold reports the configured slow-request threshold.
func (s *AdvisorService) ResponseTimeThreshold() time.Duration {
	return s.opts.ResponseTimeThreshold
}

// GetWeather returns current weather for zipCode
func (s *AdvisorService) GetWeather(ctx context.Context, zipCode string) (domain.WeatherData, error) {
	return s.weather.CurrentWeather(ctx, zipCode)
}

// Recommend fetches weather for zipCode and generates a recommendation.
func (s *AdvisorService) Recommend(ctx context.Context, zipCode string) (domain.ClothingRecommendation, error) {
	start := s.now()
	defer s.checkLatency("recommend", zipCode, start)

	weather, err := s.weather.CurrentWeather(ctx, zipCode)
	if err != nil {
		return domain.ClothingRecommendation{}, err
	}
	return s.RecommendFor(weather), nil
}

// RecommendFor generates a recommendation for caller-supplied weather.
func (s *AdvisorService) RecommendFor(weather domain.WeatherData) domain.ClothingRecommendation {
	rec := s.advisor.Generate(weather)
	s.record(rec)
	return rec
}

// RecommendBatch recommends for each zip code concurrently. Results keep the
// input order and carry per-zip errors inline.
func (s *AdvisorService) RecommendBatch(ctx context.Context, zipCodes []string) ([]domain.BatchResult, error) {
	if len(zipCodes) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	results := make([]domain.BatchResult, len(zipCodes))
	var g errgroup.Group
	g.SetLimit(s.opts.BatchConcurrency)

	for i, zip := range zipCodes {
		i, zip := i, zip
		g.Go(func() error {
			results[i].ZipCode = zip
			rec, err := s.Recommend(ctx, zip)
			if err != nil {
				results[i].Error = domain.AsWeatherAPIError(err)
				return nil
			}
			results[i].Recommendation = &rec
			return nil
		})
	}

	_ = g.Wait()
	return results, nil
}

// History returns recommendations made within the last hours.
func (s *AdvisorService) History(ctx context.Context, hours int) ([]domain.RecommendationRecord, error) {
	if hours < 1 || hours > 720 {
		return nil, ErrInvalidHours
	}
	to := s.now()
	from := to.Add(-time.Duration(hours) * time.Hour)
	records, err := s.repo.GetRecentRecommendations(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("advisor_service: failed to load history: %w", err)
	}
	return records, nil
}

// Health checks the repository.
func (s *AdvisorService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// WeatherHealth probes the weather provider when it exposes a health check.
// Providers without one (the direct OpenWeatherMap client) report nil.
func (s *AdvisorService) WeatherHealth(ctx context.Context) error {
	hc, ok := s.weather.(healthChecker)
	if !ok {
		return nil
	}
	if err := hc.Health(ctx); err != nil {
		return fmt.Errorf("advisor_service: weather provider unhealthy: %w", err)
	}
	return nil
}

// record persists and publishes rec asynchronously (tracked for graceful shutdown)
func (s *AdvisorService) record(rec domain.ClothingRecommendation) {
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveRecommendation(bgCtx, rec); err != nil {
			s.logger.Error("failed to save recommendation", "zip_code", rec.Weather.ZipCode, "error", err)
		}
		if err := s.publisher.PublishRecommendation(bgCtx, rec); err != nil {
			s.logger.Warn("failed to publish recommendation", "zip_code", rec.Weather.ZipCode, "error", err)
		}
	}()
}

func (s *AdvisorService) checkLatency(op, zipCode string, start time.Time) {
	elapsed := s.now().Sub(start)
	if elapsed > s.opts.ResponseTimeThreshold {
		s.logger.Warn("slow request",
			"op", op,
			"zip_code", zipCode,
			"elapsed", elapsed,
			"threshold", s.opts.ResponseTimeThreshold,
		)
	}
}
