package middleware

import (
	"net/http"

	"github.com/garrettladley/sensorlink/internal/xhttp"
)

var securityHeaders = map[string]string{
	xhttp.XContentTypeOpts: "nosniff",
	xhttp.XFrameOpts:       "DENY",
	xhttp.ReferrerPolicy:   "no-referrer",
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range securityHeaders {
			w.Header().Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}
