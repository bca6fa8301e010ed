package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/UnknownOlympus/hestia/internal/metrics"
)

// RequestLogger logs every request and records it in the HTTP metrics.
// The route label is the matched chi pattern, so ids do not blow up label cardinality.
func RequestLogger(log *slog.Logger, appMetrics *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(writer, req.ProtoMajor)

			next.ServeHTTP(wrapped, req)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)
			route := routePattern(req)

			if appMetrics != nil {
				appMetrics.HTTPRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
				appMetrics.HTTPRequestDuration.WithLabelValues(req.Method, route).Observe(duration.Seconds())
			}

			log.InfoContext(req.Context(), "request served",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("route", route),
				slog.Int("status", status),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("request_id", middleware.GetReqID(req.Context())),
			)
		})
	}
}

func routePattern(req *http.Request) string {
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return "unmatched"
}

// CORS allows the UI to be served from another origin during development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if req.Method == http.MethodOptions {
			writer.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(writer, req)
	})
}
