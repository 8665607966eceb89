package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/sensorlink/internal/xcontext"
	"github.com/garrettladley/sensorlink/internal/xhttp"
)

// RequestID tags each request with an id, reusing an incoming X-Request-ID
// when it is a valid uuid.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := xhttp.GetRequestHeaderRequestID(r)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx := xcontext.SetRequestID(r.Context(), id)
		xhttp.SetHeaderRequestID(w, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
