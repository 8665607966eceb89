package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/sensorlink/internal/version"
	"github.com/garrettladley/sensorlink/internal/xhttp"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func SessionID(sessionID string) slog.Attr {
	const sessionIDKey = "session_id"
	return slog.String(sessionIDKey, sessionID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Environment(env string) slog.Attr {
	const environmentKey = "environment"
	return slog.String(environmentKey, env)
}

func Action(action string) slog.Attr {
	const actionKey = "action"
	return slog.String(actionKey, action)
}

func AuthStatus(authenticated bool) slog.Attr {
	const authStatusKey = "authenticated"
	return slog.Bool(authStatusKey, authenticated)
}

func SensorStatus(status string) slog.Attr {
	const sensorStatusKey = "sensor_status"
	return slog.String(sensorStatusKey, status)
}

func Sensors(sensors []string) slog.Attr {
	const sensorsKey = "sensors"
	return slog.Any(sensorsKey, sensors)
}

func Key(key string) slog.Attr {
	const keyKey = "key"
	return slog.String(keyKey, key)
}

func Backend(backend string) slog.Attr {
	const backendKey = "backend"
	return slog.String(backendKey, backend)
}

func AppID(appID string) slog.Attr {
	const appIDKey = "app_id"
	return slog.String(appIDKey, appID)
}

func ExternalID(externalID string) slog.Attr {
	const externalIDKey = "external_id"
	return slog.String(externalIDKey, externalID)
}

func ProfileID(profileID string) slog.Attr {
	const profileIDKey = "profile_id"
	return slog.String(profileIDKey, profileID)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}
