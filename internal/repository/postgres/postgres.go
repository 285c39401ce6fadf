package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clothingadvisor/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS recommendations (
		id                   BIGSERIAL PRIMARY KEY,
		zip_code             TEXT        NOT NULL,
		temperature_category TEXT        NOT NULL,
		summary              TEXT        NOT NULL,
		payload              JSONB       NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS recommendations_created_at_idx ON recommendations (created_at DESC);
`

// PostgresRepository implements domain.RecommendationRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: time.Now}
}

// EnsureSchema creates the recommendations table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SaveRecommendation persists a recommendation to PostgreSQL
func (r *PostgresRepository) SaveRecommendation(ctx context.Context, rec domain.ClothingRecommendation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode recommendation: %w", err)
	}

	query := `
		INSERT INTO recommendations (zip_code, temperature_category, summary, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, query,
		rec.Weather.ZipCode, rec.TemperatureCategory.String(), rec.Summary, string(payload), r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save recommendation: %w", err)
	}

	return nil
}

// GetRecentRecommendations retrieves recommendations created between from and to
func (r *PostgresRepository) GetRecentRecommendations(ctx context.Context, from, to time.Time) ([]domain.RecommendationRecord, error) {
	query := `
		SELECT id, zip_code, payload, created_at
		FROM recommendations
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query recommendations: %w", err)
	}
	defer rows.Close()

	results := make([]domain.RecommendationRecord, 0)
	for rows.Next() {
		var (
			rec     domain.RecommendationRecord
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.ZipCode, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan recommendation row: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Recommendation); err != nil {
			return nil, fmt.Errorf("postgres: failed to decode recommendation %d: %w", rec.ID, err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate recommendations: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (r *PostgresRepository) Close() {
	r.pool.Close()
}
