package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"

	"tradeJournal/internal/ports"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// logging logs every request and feeds the request metrics. Paths are
// labelled by route template so trade ids do not explode label cardinality.
func logging(logger ports.Logger, metrics RequestRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			elapsed := time.Since(start)
			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}
			if metrics != nil {
				metrics.RecordRequest(r.Method, path, wrapped.statusCode, elapsed.Seconds())
			}
			logger.Debug(r.Context(), "HTTP request handled", map[string]interface{}{
				"method":     r.Method,
				"path":       path,
				"status":     wrapped.statusCode,
				"bytes":      wrapped.written,
				"durationMs": elapsed.Milliseconds(),
				"remoteAddr": r.RemoteAddr,
			})
		})
	}
}

func recovery(logger ports.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context(), fmt.Errorf("panic: %v", rec), "HTTP handler panicked", map[string]interface{}{
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					})
					writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
