package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/sensorlink/internal/version"
)

type sensorlinkTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*sensorlinkTransport)(nil)

func (t *sensorlinkTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "sensorlink/"+version.Get())
	req.Header.Set(version.Header, version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard sensorlink headers.
func NewTransport() http.RoundTripper {
	return NewTransportFrom(http.DefaultTransport)
}

func NewTransportFrom(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &sensorlinkTransport{base: base}
}
