package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/garrettladley/sensorlink/internal/xslog"
)

const tokenSweepInterval = 5 * time.Minute

// SweepExpiredTokens deletes access tokens that can no longer authorize.
func (s *Service) SweepExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredTokens(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return n, nil
}

// RunTokenSweeper sweeps expired tokens every interval until ctx is done.
// A non-positive interval uses the default.
func (s *Service) RunTokenSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = tokenSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := xslog.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.SweepExpiredTokens(ctx)
			if err != nil {
				logger.WarnContext(ctx, "token sweep failed", xslog.Error(err))
				continue
			}
			if n > 0 {
				logger.DebugContext(ctx, "expired tokens swept", xslog.Count(int(n)))
			}
		}
	}
}
