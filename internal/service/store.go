package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Entity is anything with a primary key.
type Entity interface {
	EntityID() uint
}

// Store is the system of record for one content table. Implementations
// must not fail a delete that matched no rows: callers verify deletes with
// a read, the same way a row-level security policy would hide them.
type Store[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	// NextOrder returns max(order)+1, or 0 for an empty table.
	NextOrder(ctx context.Context) (int, error)
	// SetOrder writes order = position for every id, atomically.
	SetOrder(ctx context.Context, ids []uint) error
}

// GormStore implements Store over one gorm model.
type GormStore[T Entity] struct {
	db          *gorm.DB
	entity      string
	table       string
	orderBy     string
	orderColumn string
}

// TableSpec configures a GormStore.
type TableSpec struct {
	// Entity is the human-readable name used in errors and events.
	Entity string
	// Table is the SQL table name, used in permission guidance.
	Table string
	// OrderBy is the ORDER BY clause for List.
	OrderBy string
	// OrderColumn is the position column; empty for unordered tables.
	OrderColumn string
}

// NewGormStore creates a store for T.
func NewGormStore[T Entity](gdb *gorm.DB, spec TableSpec) *GormStore[T] {
	orderBy := spec.OrderBy
	if orderBy == "" {
		orderBy = "id asc"
	}
	return &GormStore[T]{
		db:          gdb,
		entity:      spec.Entity,
		table:       spec.Table,
		orderBy:     orderBy,
		orderColumn: spec.OrderColumn,
	}
}

// TableName returns the SQL table the store writes to.
func (s *GormStore[T]) TableName() string {
	return s.table
}

// List returns every row in display order.
func (s *GormStore[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.db.WithContext(ctx).Order(s.orderBy).Find(&items).Error; err != nil {
		return nil, &StoreError{Op: "list " + s.entity, Err: err}
	}
	return items, nil
}

// Get fetches one row.
func (s *GormStore[T]) Get(ctx context.Context, id uint) (T, error) {
	var item T
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, &NotFoundError{Entity: s.entity, ID: id}
		}
		return item, &StoreError{Op: "get " + s.entity, Err: err}
	}
	return item, nil
}

// Create inserts item and fills its generated fields.
func (s *GormStore[T]) Create(ctx context.Context, item *T) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return &StoreError{Op: "create " + s.entity, Err: err}
	}
	return nil
}

// Update applies a partial update. Only the given columns are written.
func (s *GormStore[T]) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		_, err := s.Get(ctx, id)
		return err
	}

	result := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return &StoreError{Op: "update " + s.entity, Err: result.Error}
	}
	if result.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return &PermissionDeniedError{Entity: s.entity, Table: s.table, ID: id, Op: "update"}
	}
	return nil
}

// Delete removes the row permanently.
func (s *GormStore[T]) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return &StoreError{Op: "delete " + s.entity, Err: err}
	}
	return nil
}

// NextOrder returns the position for a newly appended row.
func (s *GormStore[T]) NextOrder(ctx context.Context) (int, error) {
	if s.orderColumn == "" {
		return 0, fmt.Errorf("%s is not an ordered table", s.entity)
	}

	var maxOrder int
	if err := s.db.WithContext(ctx).Model(new(T)).
		Select(fmt.Sprintf("COALESCE(MAX(%s), -1)", s.orderColumn)).
		Scan(&maxOrder).Error; err != nil {
		return 0, &StoreError{Op: "resolve " + s.entity + " order", Err: err}
	}
	return maxOrder + 1, nil
}

// SetOrder assigns order = position to every id inside one transaction, so
// a failure leaves the previous order intact.
func (s *GormStore[T]) SetOrder(ctx context.Context, ids []uint) error {
	if s.orderColumn == "" {
		return fmt.Errorf("%s is not an ordered table", s.entity)
	}
	if len(ids) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, id := range ids {
			result := tx.Model(new(T)).Where("id = ?", id).Update(s.orderColumn, index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%s %d was not updated", s.entity, id)
			}
		}
		return nil
	})
	if err != nil {
		return &StoreError{Op: "reorder " + s.entity, Err: err}
	}
	return nil
}
