package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"scamradar/pkg/logger"
)

// Logger returns a middleware that logs completed requests. Probe traffic
// (health checks, metrics scrapes) is skipped to keep scan requests visible
// in the log.
func Logger(log *logger.Logger) func(next http.Handler) http.Handler {
	httpLog := log.WithComponent("http")
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/ready" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				evt := httpLog.Info()
				if ww.Status() >= http.StatusInternalServerError {
					evt = httpLog.Error()
				}
				evt.
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Int("status", ww.Status()).
					Dur("duration", time.Since(start)).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("request completed")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
