package service

// Orderable is a row with a persisted display position. WithOrder returns a
// copy so cached slices are never mutated in place.
type Orderable[T any] interface {
	Entity
	Order() int
	WithOrder(index int) T
}

// Move returns a copy of items with the element at from removed and
// reinserted at to. Items between the two positions shift by one.
func Move[T any](items []T, from, to int) []T {
	out := make([]T, len(items))
	copy(out, items)
	if from == to || from < 0 || to < 0 || from >= len(out) || to >= len(out) {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// MoveByID applies a drag-and-drop of movedID onto overID. It reports false
// when either id is unknown or both resolve to the same position; callers
// must then skip persistence entirely.
func MoveByID[T Entity](items []T, movedID, overID uint) ([]T, bool) {
	oldIndex := indexOf(items, movedID)
	newIndex := indexOf(items, overID)
	if oldIndex < 0 || newIndex < 0 || oldIndex == newIndex {
		return items, false
	}
	return Move(items, oldIndex, newIndex), true
}

// ArrangeByIDs returns items in the order given by ids. ids must be a
// permutation of the item ids.
func ArrangeByIDs[T Entity](items []T, ids []uint) ([]T, bool) {
	if len(ids) != len(items) {
		return nil, false
	}

	byID := make(map[uint]T, len(items))
	for _, item := range items {
		byID[item.EntityID()] = item
	}

	out := make([]T, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, false
		}
		if _, dup := seen[id]; dup {
			return nil, false
		}
		seen[id] = struct{}{}
		out = append(out, item)
	}
	return out, true
}

// Renumber assigns order = position to every item.
func Renumber[T Orderable[T]](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.WithOrder(i)
	}
	return out
}

// IsDense reports whether the positions are exactly 0..len-1 in slice order.
func IsDense[T Orderable[T]](items []T) bool {
	for i, item := range items {
		if item.Order() != i {
			return false
		}
	}
	return true
}

func idsOf[T Entity](items []T) []uint {
	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.EntityID()
	}
	return ids
}

func indexOf[T Entity](items []T, id uint) int {
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func sameOrder[T Entity](items []T, ids []uint) bool {
	if len(items) != len(ids) {
		return false
	}
	for i, item := range items {
		if item.EntityID() != ids[i] {
			return false
		}
	}
	return true
}
