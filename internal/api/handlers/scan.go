package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"scamradar/internal/domain/services"
	"scamradar/internal/monitoring"
	"scamradar/pkg/logger"
)

// maxImageRequestBytes bounds the image-scan request body. Base64 inflates
// the 10MB image cap by 4/3, plus room for the JSON envelope.
const maxImageRequestBytes = 16 << 20

// ScanHandler handles scam analysis API requests
type ScanHandler struct {
	analyzer *services.Analyzer
	metrics  *monitoring.Metrics
	logger   *logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(analyzer *services.Analyzer, metrics *monitoring.Metrics, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		analyzer: analyzer,
		metrics:  metrics,
		logger:   log.WithComponent("scan-handler"),
	}
}

// ScanRequest is the body of POST /api/v1/scan
type ScanRequest struct {
	URL string `json:"url"`
}

// ImageScanRequest is the body of POST /api/v1/scan/image
type ImageScanRequest struct {
	Image string `json:"image,omitempty"` // base64, raw or data URL
	Text  string `json:"text,omitempty"`
}

// ScanURL handles POST /api/v1/scan
func (h *ScanHandler) ScanURL(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	start := time.Now()
	result, err := h.analyzer.AnalyzeURL(r.Context(), req.URL)
	if err != nil {
		h.metrics.IncErrors("invalid_url")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.metrics.ObserveAnalysis("url", time.Since(start).Seconds())
	h.metrics.IncScans(string(result.Label))

	respondJSON(w, http.StatusOK, result)
}

// ScanImage handles POST /api/v1/scan/image
func (h *ScanHandler) ScanImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageRequestBytes)

	var req ImageScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Image == "" && strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "image or text is required")
		return
	}

	var imageData []byte
	if req.Image != "" {
		data, err := decodeImage(req.Image)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid base64 image")
			return
		}
		imageData = data
	}

	start := time.Now()
	result, err := h.analyzer.AnalyzeImage(r.Context(), imageData, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrImageTooLarge) {
			h.metrics.IncErrors("image_too_large")
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("image analysis failed")
		h.metrics.IncErrors("image_analysis")
		respondError(w, http.StatusServiceUnavailable, "image analysis unavailable")
		return
	}

	h.metrics.ObserveAnalysis("image", time.Since(start).Seconds())
	h.metrics.IncImageScans(string(result.Category))

	respondJSON(w, http.StatusOK, result)
}

// ProfileURL handles GET /api/v1/profile
func (h *ScanHandler) ProfileURL(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		respondError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	profile, err := h.analyzer.ProfileURL(r.Context(), rawURL)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// decodeImage accepts raw base64 or a data URL
func decodeImage(s string) ([]byte, error) {
	if idx := strings.Index(s, ";base64,"); idx >= 0 && strings.HasPrefix(s, "data:") {
		s = s[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(s)
}
