package middleware

import (
	"net/http"

	"github.com/garrettladley/sensorlink/internal/xerrors"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

// Recovery turns a handler panic into a JSON 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				ctx := r.Context()
				xslog.FromContext(ctx).ErrorContext(ctx, "panic recovered",
					xslog.RequestGroup(r),
					xslog.ErrorGroupWithStack(v),
				)
				xerrors.WriteError(ctx, w, xerrors.Internal())
			}
		}()
		next.ServeHTTP(w, r)
	})
}
