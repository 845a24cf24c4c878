package cache

import (
	"context"

	"github.com/advisorsite/internal/notify"
	"go.uber.org/zap"
)

// Invalidator is anything that can drop its cached value.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// InvalidateOn drops target whenever the hub reports a change, until ctx
// is done or the hub closes.
func InvalidateOn(ctx context.Context, hub *notify.Hub, target Invalidator, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	events, cancel := hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := target.Invalidate(ctx); err != nil {
				logger.Warn("invalidate snapshot failed",
					zap.String("entity", ev.Entity),
					zap.String("action", string(ev.Action)),
					zap.Error(err))
			}
		}
	}
}
