package localstore

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	ID     string    `json:"id"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

func newRedisStore(t *testing.T, namespace string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, namespace), mr
}

func storesUnderTest(t *testing.T) map[string]Store {
	redisStore, _ := newRedisStore(t, "")
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
	want := []document{{ID: "t1", Status: "To Do", At: at}, {ID: "t2", Status: "Done", At: at}}

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			var missing []document
			found, err := store.Get(ctx, "tasks", &missing)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set(ctx, "tasks", want))

			var got []document
			found, err = store.Get(ctx, "tasks", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, want, got)
		})
	}
}

func TestStore_SetReplacesWholeValue(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "tasks", []document{{ID: "a"}, {ID: "b"}}))
			require.NoError(t, store.Set(ctx, "tasks", []document{{ID: "c"}}))

			var got []document
			_, err := store.Get(ctx, "tasks", &got)
			require.NoError(t, err)
			assert.Equal(t, []document{{ID: "c"}}, got)
		})
	}
}

func TestStore_EncodingFailure(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Set(ctx, "bad", make(chan int))
			assert.True(t, errors.Is(err, ErrEncoding))
		})
	}
}

func TestMemoryStore_ValuesAreNotShared(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	docs := []document{{ID: "t1", Status: "To Do"}}
	require.NoError(t, store.Set(ctx, "tasks", docs))
	docs[0].Status = "Done"

	var got []document
	_, err := store.Get(ctx, "tasks", &got)
	require.NoError(t, err)
	assert.Equal(t, "To Do", got[0].Status)
}

func TestRedisStore_Namespace(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, "demo")

	require.NoError(t, store.Set(ctx, "team-dashboard-tasks", []document{{ID: "t1"}}))

	assert.True(t, mr.Exists("demo:team-dashboard-tasks"))
	assert.False(t, mr.Exists("team-dashboard-tasks"))
	assert.Equal(t, time.Duration(0), mr.TTL("demo:team-dashboard-tasks"))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, "")
	require.NoError(t, mr.Set("tasks", "{not json"))

	var got []document
	found, err := store.Get(ctx, "tasks", &got)
	assert.False(t, found)
	assert.True(t, errors.Is(err, ErrEncoding))
}

func TestRedisStore_BackendDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, "")
	mr.Close()

	var got []document
	_, err := store.Get(ctx, "tasks", &got)
	assert.Error(t, err)
	assert.Error(t, store.Set(ctx, "tasks", got))
}

func TestDelayed_WaitsWithinRange(t *testing.T) {
	ctx := context.Background()
	store := NewDelayed(NewMemoryStore(), 5*time.Millisecond, 10*time.Millisecond)

	start := time.Now()
	require.NoError(t, store.Set(ctx, "k", "v"))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	var got string
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", got)
}

func TestDelayed_DelayBounds(t *testing.T) {
	d := NewDelayed(NewMemoryStore(), 100*time.Millisecond, time.Second)

	d.jitter = func(n int64) int64 { return 0 }
	assert.Equal(t, 100*time.Millisecond, d.delay())

	d.jitter = func(n int64) int64 { return n - 1 }
	assert.Equal(t, time.Second, d.delay())
}

func TestDelayed_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewDelayed(NewMemoryStore(), time.Hour, time.Hour)
	err := store.Set(ctx, "k", "v")
	assert.ErrorIs(t, err, context.Canceled)
}
