package xhttp

import (
	"net/http"
	"testing"
)

func TestGetRequestIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		xForwardedFor string
		remoteAddr    string
		want          string
	}{
		{name: "remote addr with port", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote addr without port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "remote addr ipv6", remoteAddr: "[2001:db8::1]:1234", want: "2001:db8::1"},
		{name: "empty", want: ""},
		{name: "forwarded wins", xForwardedFor: "203.0.113.195", remoteAddr: "192.0.2.1:1234", want: "203.0.113.195"},
		{name: "forwarded with port", xForwardedFor: "203.0.113.195:8080", remoteAddr: "192.0.2.1:1234", want: "203.0.113.195"},
		{name: "forwarded ipv6 with port", xForwardedFor: "[2001:db8::1]:8080", remoteAddr: "192.0.2.1:1234", want: "2001:db8::1"},
		{name: "forwarded chain uses first hop", xForwardedFor: "203.0.113.195, 198.51.100.7, 10.0.0.1", remoteAddr: "10.0.0.2:80", want: "203.0.113.195"},
		{name: "blank forwarded falls back", xForwardedFor: " , 10.0.0.1", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://example.com", nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}
			if tt.xForwardedFor != "" {
				req.Header.Set(XForwardedFor, tt.xForwardedFor)
			}
			req.RemoteAddr = tt.remoteAddr

			if got := GetRequestIP(req); got != tt.want {
				t.Errorf("GetRequestIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
