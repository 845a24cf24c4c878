package service

import (
	"context"
	"errors"
	"sync"

	"github.com/advisorsite/internal/metrics"
	"github.com/advisorsite/internal/notify"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
)

// Collection is the read-through cache in front of one content table. It
// owns the only in-memory copy of the rows, a loading flag and the last
// error message shown to the admin. Mutations are serialized; the cache is
// only touched after the store confirmed the write.
type Collection[T Entity] struct {
	entity string
	store  Store[T]
	events notify.Publisher
	logger *zap.Logger

	writeMu sync.Mutex

	mu      sync.RWMutex
	items   []T
	loaded  bool
	loading bool
	lastErr string
}

// CollectionOption customizes a Collection.
type CollectionOption func(*collectionOptions)

type collectionOptions struct {
	events notify.Publisher
	logger *zap.Logger
}

// WithEvents publishes change events after successful mutations.
func WithEvents(p notify.Publisher) CollectionOption {
	return func(o *collectionOptions) {
		o.events = p
	}
}

// WithLogger sets the logger used for failures.
func WithLogger(l *zap.Logger) CollectionOption {
	return func(o *collectionOptions) {
		o.logger = l
	}
}

// NewCollection creates an empty, unloaded collection.
func NewCollection[T Entity](entity string, store Store[T], opts ...CollectionOption) *Collection[T] {
	options := collectionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	return &Collection[T]{
		entity: entity,
		store:  store,
		events: options.events,
		logger: options.logger.With(zap.String("entity", entity)),
	}
}

// Entity returns the collection's name.
func (c *Collection[T]) Entity() string {
	return c.entity
}

// Load replaces the cache with the store's rows.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.loadLocked(ctx)
	return err
}

// Refresh reloads the cache and reports whether the rows differ from the
// previously cached ones. A first load always counts as a change.
func (c *Collection[T]) Refresh(ctx context.Context) (bool, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.loadLocked(ctx)
}

// loadLocked reads every row into the cache. Callers hold writeMu, so a
// reload never interleaves with a mutation.
func (c *Collection[T]) loadLocked(ctx context.Context) (bool, error) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.store.List(ctx)
	metrics.ObserveReload(c.entity, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = Message(err)
		c.logger.Warn("load failed", zap.Error(err))
		return false, err
	}
	changed := !c.loaded || !cmp.Equal(c.items, items, cmpopts.EquateEmpty())
	c.items = items
	c.loaded = true
	c.lastErr = ""
	return changed, nil
}

// EnsureLoaded loads the collection on first use.
func (c *Collection[T]) EnsureLoaded(ctx context.Context) error {
	if c.Loaded() {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ensureLoadedLocked(ctx)
}

// ensureLoadedLocked fills an unloaded cache before a mutation reads or
// renumbers it. Callers hold writeMu.
func (c *Collection[T]) ensureLoadedLocked(ctx context.Context) error {
	if c.Loaded() {
		return nil
	}
	_, err := c.loadLocked(ctx)
	return err
}

// Snapshot returns a copy of the cached rows.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the cached row with id.
func (c *Collection[T]) Find(id uint) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Get returns the row from the cache, falling back to the store.
func (c *Collection[T]) Get(ctx context.Context, id uint) (T, error) {
	if item, ok := c.Find(id); ok {
		return item, nil
	}
	return c.store.Get(ctx, id)
}

// Loaded reports whether the cache has been filled at least once.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Loading reports whether a Load is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the message of the most recent failure, or "".
func (c *Collection[T]) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Delete removes id permanently. The row is read before and after the
// delete: a missing row is NotFound, a row that survives the delete is
// PermissionDenied.
func (c *Collection[T]) Delete(ctx context.Context, id uint) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.deleteVerified(ctx, id); err != nil {
		return err
	}
	c.finish("delete", notify.ActionDeleted, id)
	return nil
}

func (c *Collection[T]) deleteVerified(ctx context.Context, id uint) error {
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	if _, err := c.store.Get(ctx, id); err != nil {
		return c.fail("delete", err)
	}

	if err := c.store.Delete(ctx, id); err != nil {
		return c.fail("delete", err)
	}

	if _, err := c.store.Get(ctx, id); err == nil {
		return c.fail("delete", &PermissionDeniedError{
			Entity: c.entity,
			Table:  tableOf(c.store),
			ID:     id,
			Op:     "delete",
		})
	} else if !errors.Is(err, ErrNotFound) {
		return c.fail("delete", err)
	}

	c.mu.Lock()
	if i := indexOf(c.items, id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	c.mu.Unlock()
	return nil
}

// Patch writes only the given columns and refreshes the cached row.
func (c *Collection[T]) Patch(ctx context.Context, id uint, fields map[string]interface{}, action notify.Action) (T, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.patchLocked(ctx, id, fields, action)
}

func (c *Collection[T]) patchLocked(ctx context.Context, id uint, fields map[string]interface{}, action notify.Action) (T, error) {
	var zero T
	op := string(action)

	if err := c.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	if err := c.store.Update(ctx, id, fields); err != nil {
		return zero, c.fail(op, err)
	}

	fresh, err := c.store.Get(ctx, id)
	if err != nil {
		return zero, c.fail(op, err)
	}

	c.mu.Lock()
	if i := indexOf(c.items, id); i >= 0 {
		c.items[i] = fresh
	} else {
		c.items = append(c.items, fresh)
	}
	c.mu.Unlock()

	c.finish(op, action, id)
	return fresh, nil
}

// createLocked inserts item and appends it to the cache. Callers hold writeMu.
func (c *Collection[T]) createLocked(ctx context.Context, item T) (T, error) {
	var zero T
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	if err := c.store.Create(ctx, &item); err != nil {
		return zero, c.fail("create", err)
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()

	c.finish("create", notify.ActionCreated, item.EntityID())
	return item, nil
}

// Create inserts item as-is.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.createLocked(ctx, item)
}

// Reject records a validation failure without touching the store.
func (c *Collection[T]) Reject(action string, err error) error {
	return c.fail(action, err)
}

func (c *Collection[T]) fail(action string, err error) error {
	err = wrapStore(action+" "+c.entity, err)
	metrics.ObserveMutation(c.entity, action, err)

	c.mu.Lock()
	c.lastErr = Message(err)
	c.mu.Unlock()

	switch {
	case errors.Is(err, ErrValidation):
		c.logger.Debug("input rejected", zap.String("action", action), zap.Error(err))
	case errors.Is(err, ErrNotFound):
		c.logger.Info("row not found", zap.String("action", action), zap.Error(err))
	default:
		c.logger.Error("mutation failed", zap.String("action", action), zap.Error(err))
	}
	return err
}

func (c *Collection[T]) finish(action string, kind notify.Action, id uint) {
	metrics.ObserveMutation(c.entity, action, nil)

	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()

	c.logger.Debug("mutation applied", zap.String("action", action), zap.Uint("id", id))
	if c.events != nil {
		c.events.Publish(notify.Event{Entity: c.entity, Action: kind, ID: id})
	}
}

// resync reloads the cache from the store after a failed write and keeps
// err as the last error.
func (c *Collection[T]) resync(ctx context.Context, err error) error {
	if _, loadErr := c.loadLocked(ctx); loadErr != nil {
		c.logger.Warn("resync failed", zap.Error(loadErr))
	}
	c.mu.Lock()
	c.lastErr = Message(err)
	c.mu.Unlock()
	return err
}

func (c *Collection[T]) replace(items []T) {
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

type tableNamer interface {
	TableName() string
}

func tableOf(store interface{}) string {
	if named, ok := store.(tableNamer); ok {
		return named.TableName()
	}
	return "the content table"
}
