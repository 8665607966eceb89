package middleware

import (
	"net/http"

	"github.com/garrettladley/sensorlink/internal/xcontext"
	"github.com/garrettladley/sensorlink/internal/xhttp"
)

// ClientSessionID carries the client's X-Session-ID, when sent, into context.
func ClientSessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionID := xhttp.GetRequestHeaderSessionID(r); sessionID != "" {
			r = r.WithContext(xcontext.SetSessionID(r.Context(), sessionID))
		}
		next.ServeHTTP(w, r)
	})
}
