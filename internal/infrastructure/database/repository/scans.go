package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamradar/internal/domain/models"
)

// ScanRecord is a persisted analysis outcome.
type ScanRecord struct {
	ID        uuid.UUID    `json:"id"`
	URL       string       `json:"url"`
	Domain    string       `json:"domain"`
	Score     int          `json:"score"`
	Label     models.Label `json:"label"`
	CreatedAt time.Time    `json:"created_at"`
}

// DailyStats aggregates scan volume per label for one day.
type DailyStats struct {
	Day       time.Time `json:"day"`
	Total     int64     `json:"total"`
	Safe      int64     `json:"safe"`
	Caution   int64     `json:"caution"`
	Dangerous int64     `json:"dangerous"`
}

// ScanRepository persists analysis results for history and statistics.
type ScanRepository struct {
	pool *pgxpool.Pool
}

// NewScanRepository creates a new repository
func NewScanRepository(pool *pgxpool.Pool) *ScanRepository {
	return &ScanRepository{pool: pool}
}

// Record stores one analysis outcome.
func (r *ScanRepository) Record(ctx context.Context, result *models.AnalysisResult) error {
	const query = `
		INSERT INTO scan_history (id, url, domain, score, label, ai_confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(), result.URL, result.Domain, result.Score,
		string(result.Label), result.AIConfidence, result.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("record scan: %w", err)
	}
	return nil
}

// RecordImage stores one image analysis outcome keyed by content hash.
func (r *ScanRepository) RecordImage(ctx context.Context, result *models.ImageAnalysisResult, imageHash string) error {
	const query = `
		INSERT INTO image_scan_history (id, image_hash, score, category, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(), imageHash, result.Score,
		string(result.Category), result.Confidence, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record image scan: %w", err)
	}
	return nil
}

// Recent returns the latest scans, newest first.
func (r *ScanRepository) Recent(ctx context.Context, limit int) ([]ScanRecord, error) {
	const query = `
		SELECT id, url, domain, score, label, created_at
		FROM scan_history
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Domain, &rec.Score, &rec.Label, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats aggregates per-label counts for the last N days.
func (r *ScanRepository) Stats(ctx context.Context, days int) ([]DailyStats, error) {
	const query = `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE label = 'SAFE'),
		       COUNT(*) FILTER (WHERE label = 'CAUTION'),
		       COUNT(*) FILTER (WHERE label = 'DANGEROUS')
		FROM scan_history
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY day
		ORDER BY day DESC`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("scan stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		if err := rows.Scan(&s.Day, &s.Total, &s.Safe, &s.Caution, &s.Dangerous); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
