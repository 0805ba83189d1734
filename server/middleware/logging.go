package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
)

var probePaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/version": true,
}

// RequestLogger logs every request with method, path, status and duration,
// and records it on metrics when set. Probe paths are not logged.
func RequestLogger(log *logger.Logger, metrics ...*observability.Metrics) Middleware {
	var m *observability.Metrics
	if len(metrics) > 0 {
		m = metrics[0]
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if probePaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			m.RecordHTTPRequest(r.Context(), r.Method, routeOf(r.URL.Path), sw.status, duration)

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				logger.FieldStatus, sw.status,
				logger.FieldDuration, duration.Milliseconds(),
			)
			if id := r.Header.Get(HeaderRequestID); id != "" {
				fields[logger.FieldRequestID] = id
			}
			switch {
			case sw.status >= 500:
				log.Error("request completed", fields)
			case sw.status >= 400:
				log.Warn("request completed", fields)
			default:
				log.Debug("request completed", fields)
			}
		})
	}
}

// routeOf replaces the job id in job paths so metrics stay low-cardinality.
//
//	/api/batch/jobs/abc/files -> /api/batch/jobs/:id/files
func routeOf(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "jobs" && parts[i+1] != "" && parts[i+1] != "refresh" {
			parts[i+1] = ":id"
			break
		}
	}
	return strings.Join(parts, "/")
}
