package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(db.Options{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func setupTestSite(t *testing.T) (*Site, *gorm.DB) {
	t.Helper()
	gdb := setupServiceTestDB(t)
	site := NewSite(gdb, defaults.Static(defaults.Builtin()), nil, nil)
	if err := site.LoadAll(context.Background()); err != nil {
		t.Fatalf("load site: %v", err)
	}
	return site, gdb
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

// countingStore records which store calls were made.
type countingStore[T Entity] struct {
	Store[T]

	mu       sync.Mutex
	creates  int
	updates  int
	setOrder int
	failSet  error
}

func (s *countingStore[T]) Create(ctx context.Context, item *T) error {
	s.mu.Lock()
	s.creates++
	s.mu.Unlock()
	return s.Store.Create(ctx, item)
}

func (s *countingStore[T]) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
	return s.Store.Update(ctx, id, fields)
}

func (s *countingStore[T]) SetOrder(ctx context.Context, ids []uint) error {
	s.mu.Lock()
	s.setOrder++
	failure := s.failSet
	s.mu.Unlock()
	if failure != nil {
		return &StoreError{Op: "reorder", Err: failure}
	}
	return s.Store.SetOrder(ctx, ids)
}

func (s *countingStore[T]) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates + s.updates + s.setOrder
}

var errInjected = errors.New("connection reset by peer")

func newCountingClients(t *testing.T) (*ClientService, *countingStore[db.Client], *gorm.DB) {
	t.Helper()
	gdb := setupServiceTestDB(t)
	store := &countingStore[db.Client]{Store: NewGormStore[db.Client](gdb, orderedSpec(clientEntity, "clients"))}
	svc := NewClientService(store)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load clients: %v", err)
	}
	return svc, store, gdb
}

func seedClients(t *testing.T, svc *ClientService, names ...string) []db.Client {
	t.Helper()
	out := make([]db.Client, 0, len(names))
	for _, name := range names {
		created, err := svc.Create(context.Background(), ClientInput{Name: strPtr(name)})
		if err != nil {
			t.Fatalf("create client %s: %v", name, err)
		}
		out = append(out, created)
	}
	return out
}

func names(items []db.Client) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func storedClients(t *testing.T, gdb *gorm.DB) []db.Client {
	t.Helper()
	var items []db.Client
	if err := gdb.Order("order_index asc").Find(&items).Error; err != nil {
		t.Fatalf("list stored clients: %v", err)
	}
	return items
}
