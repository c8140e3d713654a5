package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/landing/pkg/clientip"
	"github.com/dmitrymomot/landing/pkg/logger"
)

// accessLog writes one record per request after it completes. Health checks
// and static files are logged at debug level.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			// The locale router rewrites the path; log what the client asked for.
			path := r.URL.Path

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case isQuiet(path):
				level = slog.LevelDebug
			}
			log.LogAttrs(r.Context(), level, "http request",
				logger.Component("http"),
				slog.String("method", r.Method),
				logger.Path(path),
				logger.Status(status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
				slog.String("remote_ip", clientip.FromContext(r.Context())),
			)
		})
	}
}

func isQuiet(path string) bool {
	return strings.HasPrefix(path, "/health/") || strings.HasPrefix(path, "/static/")
}
