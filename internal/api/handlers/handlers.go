package handlers

import (
	"encoding/json"
	"net/http"

	"scamradar/internal/domain/services"
	"scamradar/internal/infrastructure/cache"
	"scamradar/internal/infrastructure/database"
	"scamradar/internal/infrastructure/database/repository"
	"scamradar/internal/monitoring"
	"scamradar/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health *HealthHandler
	Scan   *ScanHandler
	Stats  *StatsHandler
	Lists  *ListsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Analyzer   *services.Analyzer
	Cache      *cache.RedisCache
	DB         *database.PostgresDB
	Scans      *repository.ScanRepository
	Reputation *repository.ReputationRepository
	Metrics    *monitoring.Metrics
	Logger     *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Cache, deps.DB, deps.Logger),
		Scan:   NewScanHandler(deps.Analyzer, deps.Metrics, deps.Logger),
		Stats:  NewStatsHandler(deps.Scans, deps.Cache, deps.Logger),
		Lists:  NewListsHandler(deps.Reputation, deps.Logger),
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
