package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scamradar/internal/domain/models"
	"scamradar/internal/domain/services"
	"scamradar/internal/domain/services/ai"
	"scamradar/internal/monitoring"
	"scamradar/pkg/logger"
)

// Prometheus collectors register globally, so the test binary shares one set.
var testMetrics = monitoring.NewMetrics()

type stubJudge struct {
	outcome ai.JudgeOutcome
}

func (s *stubJudge) Judge(ctx context.Context, rawURL, domain string) ai.JudgeOutcome {
	return s.outcome
}

func newTestScanHandler(t *testing.T) *ScanHandler {
	t.Helper()
	return newTestScanHandlerWithConfig(t, services.AnalyzerConfig{})
}

func newTestScanHandlerWithConfig(t *testing.T, cfg services.AnalyzerConfig) *ScanHandler {
	t.Helper()
	log := logger.NewNop()

	judge := &stubJudge{outcome: ai.JudgeOutcome{
		Verdict: models.JudgeVerdict{
			Score:      10,
			Confidence: 0.9,
			Category:   "safe",
			Reachable:  true,
		},
		Content: models.ContentSummary{Fetched: true, Title: "Example"},
	}}

	classifier := services.NewImageClassifier(nil, services.NewPatternProvider(nil, nil, log), log)
	analyzer := services.NewAnalyzer(cfg, nil, judge, classifier, nil, nil, log)

	return NewScanHandler(analyzer, testMetrics, log)
}

func TestScanURLInvalidBody(t *testing.T) {
	h := newTestScanHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.ScanURL(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScanURLMissingURL(t *testing.T) {
	h := newTestScanHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", strings.NewReader(`{"url":"  "}`))
	rec := httptest.NewRecorder()
	h.ScanURL(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScanURLRejectsPrivateHost(t *testing.T) {
	h := newTestScanHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", strings.NewReader(`{"url":"http://localhost/admin"}`))
	rec := httptest.NewRecorder()
	h.ScanURL(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScanURLReturnsVerdict(t *testing.T) {
	h := newTestScanHandler(t)

	body, _ := json.Marshal(ScanRequest{URL: "https://example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ScanURL(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.URL != "https://example.com" {
		t.Errorf("URL = %q, want %q", result.URL, "https://example.com")
	}
	if result.Label != models.LabelSafe {
		t.Errorf("Label = %q, want %q", result.Label, models.LabelSafe)
	}
	if len(result.Reasons) == 0 {
		t.Error("expected at least one reason")
	}
}

func TestScanImageEmptyRequest(t *testing.T) {
	h := newTestScanHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/image", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ScanImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScanImageInvalidBase64(t *testing.T) {
	h := newTestScanHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/image", strings.NewReader(`{"image":"!!not-base64!!"}`))
	rec := httptest.NewRecorder()
	h.ScanImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScanImageTextOnly(t *testing.T) {
	h := newTestScanHandler(t)

	body, _ := json.Marshal(ImageScanRequest{Text: "nhờ chuyển khoản gấp, bank đang bị lỗi"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/image", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ScanImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result models.ImageAnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Score == 0 {
		t.Error("expected a non-zero score for a money transfer request")
	}
}

func TestScanImageOversizedPayload(t *testing.T) {
	h := newTestScanHandlerWithConfig(t, services.AnalyzerConfig{MaxImageBytes: 1024})

	encoded := base64.StdEncoding.EncodeToString(make([]byte, 2048))
	body, _ := json.Marshal(ImageScanRequest{Image: encoded})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/image", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ScanImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "maximum allowed size") {
		t.Errorf("body = %s, want a size limit message", rec.Body.String())
	}
}

func TestProfileURLMissingParam(t *testing.T) {
	h := newTestScanHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	h.ProfileURL(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestProfileURL(t *testing.T) {
	h := newTestScanHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile?url=https://example.com", nil)
	rec := httptest.NewRecorder()
	h.ProfileURL(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var profile models.WebsiteProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
}

func TestDecodeImage(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0x01}

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"raw base64", "/9j/AQ==", true},
		{"data URL", "data:image/jpeg;base64,/9j/AQ==", true},
		{"garbage", "!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := decodeImage(tt.input)
			if tt.ok {
				if err != nil {
					t.Fatalf("decodeImage(%q) error: %v", tt.input, err)
				}
				if !bytes.Equal(data, raw) {
					t.Errorf("decoded %v, want %v", data, raw)
				}
			} else if err == nil {
				t.Errorf("decodeImage(%q) expected error", tt.input)
			}
		})
	}
}
