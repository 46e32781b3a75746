package handlers

import (
	"net/http"
	"strconv"
	"time"

	"scamradar/internal/infrastructure/cache"
	"scamradar/internal/infrastructure/database/repository"
	"scamradar/pkg/logger"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	scans  *repository.ScanRepository
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(scans *repository.ScanRepository, c *cache.RedisCache, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		scans:  scans,
		cache:  c,
		logger: log.WithComponent("stats"),
	}
}

// StatsResponse is the body of GET /api/v1/stats
type StatsResponse struct {
	Days      int                     `json:"days"`
	Daily     []repository.DailyStats `json:"daily"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.scans == nil {
		respondError(w, http.StatusServiceUnavailable, "statistics are not available")
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 90 {
			days = n
		}
	}

	// Serve from cache when possible
	if h.cache != nil && days == 7 {
		var cached StatsResponse
		if err := h.cache.GetJSON(r.Context(), cache.KeyStats, &cached); err == nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	daily, err := h.scans.Stats(r.Context(), days)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	response := StatsResponse{
		Days:      days,
		Daily:     daily,
		UpdatedAt: time.Now().UTC(),
	}

	if h.cache != nil && days == 7 {
		_ = h.cache.SetJSON(r.Context(), cache.KeyStats, response, 5*time.Minute)
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	respondJSON(w, http.StatusOK, response)
}

// Recent handles GET /api/v1/scans/recent
func (h *StatsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.scans == nil {
		respondError(w, http.StatusServiceUnavailable, "scan history is not available")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	records, err := h.scans.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load recent scans")
		respondError(w, http.StatusInternalServerError, "failed to load recent scans")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scans": records,
		"count": len(records),
	})
}
