// Package repository contains the PostgreSQL read and write paths used by
// the analysis services.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamradar/internal/domain/models"
)

// ReputationRepository reads the whitelist, blocklist and scam-pattern
// tables.
type ReputationRepository struct {
	pool *pgxpool.Pool
}

// NewReputationRepository creates a new repository
func NewReputationRepository(pool *pgxpool.Pool) *ReputationRepository {
	return &ReputationRepository{pool: pool}
}

// IsWhitelisted reports whether any of the given domains is on the
// whitelist. Callers pass both the exact domain and its root domain.
func (r *ReputationRepository) IsWhitelisted(ctx context.Context, domains ...string) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM domain_whitelist
			WHERE domain = ANY($1) AND is_active = true
		)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, domains).Scan(&exists); err != nil {
		return false, fmt.Errorf("whitelist lookup: %w", err)
	}
	return exists, nil
}

// CheckBlocklist returns the block reason for the first matching domain,
// or a non-blocked match when none of the domains is listed.
func (r *ReputationRepository) CheckBlocklist(ctx context.Context, domains ...string) (models.BlocklistMatch, error) {
	const query = `
		SELECT reason FROM domain_blocklist
		WHERE domain = ANY($1) AND is_active = true
		LIMIT 1`

	var reason string
	err := r.pool.QueryRow(ctx, query, domains).Scan(&reason)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.BlocklistMatch{}, nil
	}
	if err != nil {
		return models.BlocklistMatch{}, fmt.Errorf("blocklist lookup: %w", err)
	}
	return models.BlocklistMatch{Blocked: true, Reason: reason}, nil
}

// LoadActivePatterns returns every active scam pattern ordered by severity,
// highest first.
func (r *ReputationRepository) LoadActivePatterns(ctx context.Context) ([]models.ScamPattern, error) {
	const query = `
		SELECT id, pattern, description, severity, category
		FROM scam_patterns
		WHERE is_active = true
		ORDER BY severity DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load patterns: %w", err)
	}
	defer rows.Close()

	var patterns []models.ScamPattern
	for rows.Next() {
		p := models.ScamPattern{IsActive: true}
		if err := rows.Scan(&p.ID, &p.Pattern, &p.Description, &p.Severity, &p.Category); err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func tableFor(listType models.ListType) string {
	if listType == models.ListBlocklist {
		return "domain_blocklist"
	}
	return "domain_whitelist"
}

// AddEntry inserts a domain into the given list. Re-adding an existing
// domain reactivates it and updates the reason.
func (r *ReputationRepository) AddEntry(ctx context.Context, entry *models.ReputationEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, domain, reason, brand, category, created_by, created_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		ON CONFLICT (domain) DO UPDATE
		SET reason = EXCLUDED.reason, is_active = true`, tableFor(entry.ListType))

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.IsActive = true

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Domain, entry.Reason, entry.Brand, entry.Category,
		entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add %s entry: %w", entry.ListType, err)
	}
	return nil
}

// ListEntries returns the active entries of the given list, newest first.
func (r *ReputationRepository) ListEntries(ctx context.Context, listType models.ListType, limit int) ([]models.ReputationEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, domain, reason, brand, category, created_by, created_at
		FROM %s
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1`, tableFor(listType))

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", listType, err)
	}
	defer rows.Close()

	var entries []models.ReputationEntry
	for rows.Next() {
		e := models.ReputationEntry{ListType: listType, IsActive: true}
		if err := rows.Scan(&e.ID, &e.Domain, &e.Reason, &e.Brand, &e.Category, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", listType, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RemoveEntry deactivates an entry. Rows are kept for audit.
func (r *ReputationRepository) RemoveEntry(ctx context.Context, listType models.ListType, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET is_active = false WHERE id = $1`, tableFor(listType))
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("remove %s entry: %w", listType, err)
	}
	return nil
}
