package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"scamradar/pkg/logger"
)

func newBufferLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: zerolog.New(buf)}
}

func TestLoggerSkipsProbePaths(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	if buf.Len() != 0 {
		t.Errorf("probe paths should not be logged, got: %s", buf.String())
	}
}

func TestLoggerRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	line := buf.String()
	if !strings.Contains(line, `"message":"request completed"`) {
		t.Fatalf("missing completion message: %s", line)
	}
	if !strings.Contains(line, `"path":"/api/v1/scan"`) || !strings.Contains(line, `"status":200`) {
		t.Errorf("missing request fields: %s", line)
	}
	if !strings.Contains(line, `"level":"info"`) {
		t.Errorf("expected info level for a 200 response: %s", line)
	}
}

func TestLoggerEscalatesServerErrors(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	line := buf.String()
	if !strings.Contains(line, `"level":"error"`) {
		t.Errorf("expected error level for a 500 response: %s", line)
	}
}
