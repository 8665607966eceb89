// Package session names one run of the client. The id is sent as X-Session-ID
// so the sandbox can group the requests of a run.
package session

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a time-ordered uuid, falling back to a timestamp-prefixed
// random one when the clock sequence cannot be read.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return time.Now().UTC().Format("20060102-150405") + "-" + uuid.NewString()
	}
	return id.String()
}
