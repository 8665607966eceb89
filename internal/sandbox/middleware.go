package sandbox

import (
	"errors"
	"net/http"

	"github.com/garrettladley/sensorlink/internal/xcontext"
	"github.com/garrettladley/sensorlink/internal/xerrors"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

// ProfileAuth resolves the profile token and stores the profile in context.
func ProfileAuth(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := xslog.FromContext(ctx)

			profile, err := service.Authorize(ctx, r.Header.Get("Authorization"))
			if err != nil {
				logger.WarnContext(ctx, "profile token rejected",
					xslog.RequestPath(r),
					xslog.ErrorGroup(err))

				switch {
				case errors.Is(err, ErrMissingToken):
					xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("missing Authorization header")))
				case errors.Is(err, ErrInvalidToken):
					xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage(err.Error())))
				default:
					xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("token validation failed"), xerrors.WithCause(err)))
				}
				return
			}

			ctx = xcontext.SetProfileID(ctx, profile.ID)
			ctx = xslog.WithAttrs(ctx, xslog.ProfileID(profile.ID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
