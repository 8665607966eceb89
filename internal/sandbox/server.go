package sandbox

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/sensorlink/internal/xhttp/middleware"
)

// NewRouter builds the sandbox API with its full middleware chain.
func NewRouter(service *Service, limiter *IPLimiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	NewHandler(service).Routes(mux)

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.ClientSessionID,
		middleware.Logger(logger),
		middleware.Recovery,
		middleware.Logging,
		middleware.SecurityHeaders,
		RateLimit(limiter),
	)
}
