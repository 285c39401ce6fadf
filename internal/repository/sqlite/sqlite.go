// Package sqlite stores recommendation history in a local SQLite file
// using the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/clothingadvisor/backend/internal/domain"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `CREATE TABLE IF NOT EXISTS recommendations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	zip_code TEXT NOT NULL,
	temperature_category TEXT NOT NULL,
	summary TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS recommendations_created_at_idx ON recommendations (created_at);`

// Repository implements domain.RecommendationRepository on SQLite.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the database at path and applies the schema.
func New(ctx context.Context, path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}
	// a single writer avoids SQLITE_BUSY from the background save goroutines
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &Repository{db: db, now: time.Now}, nil
}

// SaveRecommendation inserts rec with the current time.
func (r *Repository) SaveRecommendation(ctx context.Context, rec domain.ClothingRecommendation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("sqlite: failed to encode recommendation: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO recommendations(zip_code, temperature_category, summary, payload, created_at) VALUES(?,?,?,?,?)`,
		rec.Weather.ZipCode, rec.TemperatureCategory.String(), rec.Summary, string(payload), formatTime(r.now()),
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save recommendation: %w", err)
	}
	return nil
}

// GetRecentRecommendations returns up to 100 records in [from, to], newest first.
func (r *Repository) GetRecentRecommendations(ctx context.Context, from, to time.Time) ([]domain.RecommendationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, zip_code, payload, created_at FROM recommendations
		 WHERE created_at BETWEEN ? AND ?
		 ORDER BY created_at DESC, id DESC LIMIT 100`,
		formatTime(from), formatTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query recommendations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RecommendationRecord, 0)
	for rows.Next() {
		var (
			rec     domain.RecommendationRecord
			payload string
			ts      string
		)
		if err := rows.Scan(&rec.ID, &rec.ZipCode, &payload, &ts); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Recommendation); err != nil {
			return nil, fmt.Errorf("sqlite: failed to decode recommendation %d: %w", rec.ID, err)
		}
		if rec.CreatedAt, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("sqlite: bad timestamp %q: %w", ts, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate rows: %w", err)
	}
	return out, nil
}

// Health pings the database.
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
