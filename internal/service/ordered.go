package service

import (
	"context"

	"github.com/advisorsite/internal/notify"
)

// OrderedCollection is a Collection whose rows carry a dense, zero-based
// display position.
type OrderedCollection[T Orderable[T]] struct {
	*Collection[T]
}

// NewOrderedCollection creates an ordered accessor.
func NewOrderedCollection[T Orderable[T]](entity string, store Store[T], opts ...CollectionOption) *OrderedCollection[T] {
	return &OrderedCollection[T]{Collection: NewCollection(entity, store, opts...)}
}

// Add appends item at the end of the list.
func (c *OrderedCollection[T]) Add(ctx context.Context, item T) (T, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var zero T
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	next, err := c.store.NextOrder(ctx)
	if err != nil {
		return zero, c.fail("create", err)
	}
	return c.createLocked(ctx, item.WithOrder(next))
}

// Delete removes id and renumbers the rows that follow it.
func (c *OrderedCollection[T]) Delete(ctx context.Context, id uint) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.deleteVerified(ctx, id); err != nil {
		return err
	}

	remaining := c.Snapshot()
	if !IsDense(remaining) {
		if err := c.store.SetOrder(ctx, idsOf(remaining)); err != nil {
			// 删除已经生效，只有重新编号失败；以存储为准重新加载。
			return c.resync(ctx, c.fail("reorder", err))
		}
		c.replace(Renumber(remaining))
	}

	c.finish("delete", notify.ActionDeleted, id)
	return nil
}

// Reorder moves movedID to the position currently held by overID. It
// reports whether anything was written; unknown ids and a drop onto itself
// are no-ops.
func (c *OrderedCollection[T]) Reorder(ctx context.Context, movedID, overID uint) (bool, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ensureLoadedLocked(ctx); err != nil {
		return false, err
	}
	moved, ok := MoveByID(c.Snapshot(), movedID, overID)
	if !ok {
		return false, nil
	}
	return true, c.persistOrder(ctx, moved, movedID)
}

// ApplyOrder persists a complete new sequence. ids must contain every
// cached id exactly once.
func (c *OrderedCollection[T]) ApplyOrder(ctx context.Context, ids []uint) (bool, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ensureLoadedLocked(ctx); err != nil {
		return false, err
	}
	current := c.Snapshot()
	arranged, ok := ArrangeByIDs(current, ids)
	if !ok {
		return false, c.fail("reorder", invalid(c.entity, "ids", "order must list every %s exactly once", c.entity))
	}
	if sameOrder(current, ids) && IsDense(current) {
		return false, nil
	}
	return true, c.persistOrder(ctx, arranged, 0)
}

func (c *OrderedCollection[T]) persistOrder(ctx context.Context, items []T, movedID uint) error {
	if err := c.store.SetOrder(ctx, idsOf(items)); err != nil {
		// SetOrder 在事务中执行，失败后存储保持原顺序；重新加载以防缓存过期。
		return c.resync(ctx, c.fail("reorder", err))
	}

	c.replace(Renumber(items))
	c.finish("reorder", notify.ActionReordered, movedID)
	return nil
}
