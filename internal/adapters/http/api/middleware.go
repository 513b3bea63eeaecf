package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/asana/pkg/logger"
	"github.com/okian/asana/pkg/metrics"
)

// MetricsMiddleware records request count, latency and failures for endpoint.
// Server errors are also logged.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(rec.status), float64(elapsed.Microseconds())/1000)
		if rec.status < http.StatusBadRequest {
			return
		}
		metrics.RecordErrorByEndpoint(endpoint, r.Method, errorClass(rec.status))
		if rec.status >= http.StatusInternalServerError {
			logger.Named("api").Error(r.Context(), "request failed",
				logger.String("endpoint", endpoint),
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", rec.status),
				logger.Duration("elapsed", elapsed),
			)
		}
	}
}

// errorClass buckets a failing status into a low-cardinality label.
func errorClass(status int) string {
	switch status {
	case http.StatusTooManyRequests:
		return "backpressure"
	case http.StatusServiceUnavailable:
		return "unavailable"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnprocessableEntity:
		return "unprocessable"
	}
	if status >= http.StatusInternalServerError {
		return "server_error"
	}
	return "client_error"
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
