package middleware

import (
	"net/http"
	"strings"
	"time"

	"garment-backend/internal/logging"

	"go.uber.org/zap"
)

// shouldSkipLogging drops probes and scrapes that would drown the request log
func shouldSkipLogging(path string) bool {
	return path == "/metrics" || strings.HasPrefix(path, "/health")
}

// RequestLogger logs one line per API request
func RequestLogger(next http.Handler) http.Handler {
	logger := logging.Named("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := newStatusRecorder(w)
		next.ServeHTTP(wrapped, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", routeLabel(r)),
			zap.Int("status", wrapped.statusCode),
			zap.Int("bytes", wrapped.bytesWritten),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		}
		switch {
		case wrapped.statusCode >= 500:
			logger.Error("request", fields...)
		case wrapped.statusCode >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	})
}
