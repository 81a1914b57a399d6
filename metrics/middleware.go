package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Middleware wraps an HTTP handler with request count and duration instrumentation
func Middleware(next http.Handler, environment string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Wrap the response writer to capture the status code
		rww := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		startTime := time.Now()

		next.ServeHTTP(rww, r)

		duration := time.Since(startTime).Seconds()

		endpoint := r.URL.Path

		HttpRequestsTotal.WithLabelValues(endpoint, r.Method, strconv.Itoa(rww.statusCode), environment).Inc()
		HttpRequestDuration.WithLabelValues(endpoint, r.Method, environment).Observe(duration)
	})
}

// responseWriterWrapper is a custom response writer that captures the status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before calling the wrapped ResponseWriter
func (rww *responseWriterWrapper) WriteHeader(statusCode int) {
	rww.statusCode = statusCode
	rww.ResponseWriter.WriteHeader(statusCode)
}
