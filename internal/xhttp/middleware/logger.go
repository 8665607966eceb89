package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/sensorlink/internal/xcontext"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

// Logger injects a logger tagged with the request and session ids.
// Must run after RequestID and ClientSessionID.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base
			if id, ok := xcontext.GetRequestID(r.Context()); ok {
				logger = logger.With(xslog.RequestID(id))
			}
			if id, ok := xcontext.GetSessionID(r.Context()); ok {
				logger = logger.With(xslog.SessionID(id))
			}
			ctx := xslog.WithLogger(r.Context(), logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
