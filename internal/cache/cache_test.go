package cache

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/advisorsite/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type page struct {
	Title string `json:"title"`
}

func TestMemoryExpires(t *testing.T) {
	mem := NewMemory()
	now := time.Unix(1000, 0)
	mem.now = func() time.Time { return now }

	require.NoError(t, mem.Set(context.Background(), "k", []byte("v"), time.Second))
	got, ok, err := mem.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(got))

	now = now.Add(2 * time.Second)
	_, ok, _ = mem.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestSnapshotBuildsOnceUntilInvalidated(t *testing.T) {
	var builds atomic.Int32
	snap := NewSnapshot(NewMemory(), "public", time.Minute, func(context.Context) (page, error) {
		builds.Add(1)
		return page{Title: "Home"}, nil
	})

	for i := 0; i < 3; i++ {
		got, err := snap.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Home", got.Title)
	}
	assert.EqualValues(t, 1, builds.Load())

	require.NoError(t, snap.Invalidate(context.Background()))
	_, err := snap.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, builds.Load())
}

func TestSnapshotDoesNotCacheFailures(t *testing.T) {
	fail := true
	snap := NewSnapshot(NewMemory(), "public", time.Minute, func(context.Context) (page, error) {
		if fail {
			return page{}, errors.New("store down")
		}
		return page{Title: "ok"}, nil
	})

	_, err := snap.Get(context.Background())
	require.Error(t, err)

	fail = false
	got, err := snap.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Title)
}

func TestInvalidateOnHubEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := notify.NewHub(4)
	var builds atomic.Int32
	snap := NewSnapshot(NewMemory(), "public", 0, func(context.Context) (page, error) {
		builds.Add(1)
		return page{}, nil
	})
	_, _ = snap.Get(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- InvalidateOn(ctx, hub, snap, nil) }()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(notify.Event{Entity: "client", Action: notify.ActionCreated})

	require.Eventually(t, func() bool {
		_, _ = snap.Get(context.Background())
		return builds.Load() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRedisRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	store, err := NewRedis(ctx, url, "advisorsite-test:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(got))

	require.NoError(t, store.Delete(ctx, "k"))
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
