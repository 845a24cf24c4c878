package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/advisorsite/internal/notify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Loader is a cache that can be refilled from the store.
type Loader interface {
	Entity() string
	Load(ctx context.Context) error
}

// Refreshable is a cache that reloads itself and reports whether the rows
// changed since the previous load.
type Refreshable interface {
	Entity() string
	Refresh(ctx context.Context) (bool, error)
}

// Refresher reloads caches on a fixed schedule. Data changed by another
// writer becomes visible within one interval.
type Refresher struct {
	interval time.Duration
	loaders  []Refreshable
	events   notify.Publisher
	logger   *zap.Logger
}

// NewRefresher creates a refresher for loaders. events may be nil.
func NewRefresher(interval time.Duration, events notify.Publisher, logger *zap.Logger, loaders ...Refreshable) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		interval: interval,
		loaders:  loaders,
		events:   events,
		logger:   logger.Named("refresher"),
	}
}

// RefreshAll reloads every cache once and joins the failures. Only caches
// whose rows changed publish a reloaded event.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, loader := range r.loaders {
		changed, err := loader.Refresh(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("reload %s: %w", loader.Entity(), err))
			continue
		}
		if changed && r.events != nil {
			r.events.Publish(notify.Event{Entity: loader.Entity(), Action: notify.ActionReloaded})
		}
	}
	return errors.Join(errs...)
}

// Run refreshes on every tick until ctx is cancelled. A non-positive
// interval disables polling.
func (r *Refresher) Run(ctx context.Context) error {
	if r.interval <= 0 || len(r.loaders) == 0 {
		<-ctx.Done()
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(fmt.Sprintf("@every %s", r.interval), func() {
		tickCtx, cancel := context.WithTimeout(ctx, r.interval)
		defer cancel()
		if err := r.RefreshAll(tickCtx); err != nil {
			r.logger.Warn("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	r.logger.Info("content refresh scheduled", zap.Duration("interval", r.interval))
	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	return nil
}
