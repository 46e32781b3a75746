package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scamradar/internal/domain/models"
	"scamradar/internal/infrastructure/database/repository"
	"scamradar/pkg/logger"
	"scamradar/pkg/urlutil"
)

// ListsHandler manages the domain whitelist and blocklist
type ListsHandler struct {
	repo   *repository.ReputationRepository
	logger *logger.Logger
}

// NewListsHandler creates a new lists handler
func NewListsHandler(repo *repository.ReputationRepository, log *logger.Logger) *ListsHandler {
	return &ListsHandler{
		repo:   repo,
		logger: log.WithComponent("lists-handler"),
	}
}

type listEntryRequest struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

// AddToWhitelist handles POST /api/v1/lists/whitelist
func (h *ListsHandler) AddToWhitelist(w http.ResponseWriter, r *http.Request) {
	h.addEntry(w, r, models.ListWhitelist)
}

// AddToBlocklist handles POST /api/v1/lists/blocklist
func (h *ListsHandler) AddToBlocklist(w http.ResponseWriter, r *http.Request) {
	h.addEntry(w, r, models.ListBlocklist)
}

func (h *ListsHandler) addEntry(w http.ResponseWriter, r *http.Request, listType models.ListType) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "reputation lists are not available")
		return
	}

	var req listEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	domain := strings.ToLower(strings.TrimSpace(req.Domain))
	if domain == "" {
		respondError(w, http.StatusBadRequest, "domain is required")
		return
	}
	// Accept full URLs and reduce them to the hostname
	if strings.Contains(domain, "/") {
		domain = urlutil.ExtractDomain(urlutil.Normalize(domain))
	}

	entry := &models.ReputationEntry{
		Domain:    domain,
		ListType:  listType,
		Reason:    req.Reason,
		Brand:     req.Brand,
		Category:  req.Category,
		CreatedBy: "api",
	}

	if err := h.repo.AddEntry(r.Context(), entry); err != nil {
		h.logger.Error().Err(err).Str("domain", domain).Msg("failed to add list entry")
		respondError(w, http.StatusInternalServerError, "failed to add entry")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// GetWhitelist handles GET /api/v1/lists/whitelist
func (h *ListsHandler) GetWhitelist(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, models.ListWhitelist)
}

// GetBlocklist handles GET /api/v1/lists/blocklist
func (h *ListsHandler) GetBlocklist(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, models.ListBlocklist)
}

func (h *ListsHandler) listEntries(w http.ResponseWriter, r *http.Request, listType models.ListType) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "reputation lists are not available")
		return
	}

	entries, err := h.repo.ListEntries(r.Context(), listType, 500)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load list entries")
		respondError(w, http.StatusInternalServerError, "failed to load entries")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// RemoveFromList handles DELETE /api/v1/lists/{list}/{id}
func (h *ListsHandler) RemoveFromList(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "reputation lists are not available")
		return
	}

	var listType models.ListType
	switch chi.URLParam(r, "list") {
	case "whitelist":
		listType = models.ListWhitelist
	case "blocklist":
		listType = models.ListBlocklist
	default:
		respondError(w, http.StatusBadRequest, "list must be whitelist or blocklist")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.repo.RemoveEntry(r.Context(), listType, id); err != nil {
		h.logger.Error().Err(err).Str("id", id.String()).Msg("failed to remove list entry")
		respondError(w, http.StatusInternalServerError, "failed to remove entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
