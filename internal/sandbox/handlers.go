package sandbox

import (
	"errors"
	"io"
	"net/http"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/sensorlink/internal/client/sahha"
	"github.com/garrettladley/sensorlink/internal/validator"
	"github.com/garrettladley/sensorlink/internal/xcontext"
	"github.com/garrettladley/sensorlink/internal/xerrors"
	"github.com/garrettladley/sensorlink/internal/xhttp"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

const (
	APIPrefix = "/api/v1"

	headerAppID     = "AppId"
	headerAppSecret = "AppSecret"

	maxBodyBytes = 64 << 10
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the API under APIPrefix.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST "+APIPrefix+"/oauth/profile/register/appId", h.HandleRegister)
	mux.HandleFunc("POST "+APIPrefix+"/oauth/profile/refreshToken", h.HandleRefresh)
	mux.Handle("PUT "+APIPrefix+"/user/deviceInformation", ProfileAuth(h.service)(http.HandlerFunc(h.HandleDeviceInformation)))
	mux.HandleFunc("GET /health", HandleHealth)
}

type registerBody sahha.RegisterRequest

func (b registerBody) Validate() map[string]string {
	if b.ExternalID == "" {
		return map[string]string{"externalId": "required"}
	}
	if len(b.ExternalID) > 256 {
		return map[string]string{"externalId": "must be at most 256 characters"}
	}
	return nil
}

// HandleRegister handles POST /api/v1/oauth/profile/register/appId requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body registerBody
	if err := decode(r, &body); err != nil {
		xerrors.WriteError(ctx, w, err)
		return
	}
	if verr := validator.Validate(body); verr != nil {
		xerrors.WriteError(ctx, w, verr)
		return
	}

	appID := r.Header.Get(headerAppID)
	resp, profile, err := h.service.Register(ctx, appID, r.Header.Get(headerAppSecret), body.ExternalID)
	if err != nil {
		if errors.Is(err, ErrInvalidApp) {
			xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage(err.Error())))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to register profile"), xerrors.WithCause(err)))
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "profile registered",
		xslog.ProfileGroup(profile.ID.String(), appID),
		xslog.ExternalID(body.ExternalID),
	)
	xhttp.WriteOK(w, resp)
}

// HandleRefresh handles POST /api/v1/oauth/profile/refreshToken requests.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body sahha.RefreshRequest
	if err := decode(r, &body); err != nil {
		xerrors.WriteError(ctx, w, err)
		return
	}

	resp, profile, err := h.service.Refresh(ctx, body.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage(err.Error())))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to refresh token"), xerrors.WithCause(err)))
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "profile token refreshed", xslog.ProfileGroup(profile.ID.String(), profile.AppID))
	xhttp.WriteOK(w, resp)
}

// HandleDeviceInformation handles PUT /api/v1/user/deviceInformation requests.
func (h *Handler) HandleDeviceInformation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID, ok := xcontext.GetProfileID(ctx)
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.Unauthorized())
		return
	}

	var info sahha.DeviceInformation
	if err := decode(r, &info); err != nil {
		xerrors.WriteError(ctx, w, err)
		return
	}

	raw, err := go_json.Marshal(info)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithCause(err)))
		return
	}

	if err := h.service.SetDeviceInformation(ctx, profileID, raw); err != nil {
		if errors.Is(err, ErrNotFound) {
			xerrors.WriteError(ctx, w, xerrors.NotFound(xerrors.WithMessage("profile not found")))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to store device information"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteNoContent(w)
}

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, map[string]string{"status": "ok"})
}

func decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return xerrors.BadRequest(xerrors.WithMessage("failed to read body"), xerrors.WithCause(err))
	}
	if len(body) > maxBodyBytes {
		return xerrors.BadRequest(xerrors.WithMessage("body too large"))
	}
	if err := go_json.Unmarshal(body, v); err != nil {
		return xerrors.BadRequest(xerrors.WithMessage("invalid JSON body"), xerrors.WithCause(err))
	}
	return nil
}
