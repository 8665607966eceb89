package xhttp

import (
	"net/http"
	"time"
)

type ClientOption func(*http.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

// WithBaseTransport swaps the transport under the sensorlink headers.
func WithBaseTransport(rt http.RoundTripper) ClientOption {
	return func(c *http.Client) { c.Transport = NewTransportFrom(rt) }
}

// NewHTTPClient returns a client whose requests carry the sensorlink user
// agent and version headers.
func NewHTTPClient(opts ...ClientOption) *http.Client {
	c := &http.Client{Transport: NewTransport()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
