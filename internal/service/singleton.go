package service

import (
	"context"

	"github.com/advisorsite/internal/notify"
)

// Singleton is an accessor over a table that holds at most one row.
type Singleton[T Entity] struct {
	*Collection[T]
}

// NewSingleton creates a singleton accessor.
func NewSingleton[T Entity](entity string, store Store[T], opts ...CollectionOption) *Singleton[T] {
	return &Singleton[T]{Collection: NewCollection(entity, store, opts...)}
}

// Current returns the stored row, if any. Extra rows are ignored; the
// oldest one wins.
func (s *Singleton[T]) Current() (T, bool) {
	items := s.Snapshot()
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[0], true
}

// Save updates the existing row with fields, or inserts fresh when the
// table is empty.
func (s *Singleton[T]) Save(ctx context.Context, fresh T, fields map[string]interface{}) (T, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		var zero T
		return zero, err
	}
	if current, ok := s.Current(); ok {
		return s.patchLocked(ctx, current.EntityID(), fields, notify.ActionUpdated)
	}
	return s.createLocked(ctx, fresh)
}
