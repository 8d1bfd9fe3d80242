// Package storetest is the behavioural contract every ports.DocumentStore
// adapter must satisfy. Adapter test files call Run with a constructor for
// their backend.
package storetest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Options describes backend capabilities the contract depends on.
type Options struct {
	// SupportsWatch is false for stores whose Watch returns ErrWatchUnsupported.
	SupportsWatch bool

	// WatchTimeout bounds the wait for a change notification.
	WatchTimeout time.Duration
}

// Run executes the contract against a fresh collection per sub-test.
func Run(t *testing.T, store ports.DocumentStore, opts Options) {
	t.Helper()
	if opts.WatchTimeout == 0 {
		opts.WatchTimeout = 5 * time.Second
	}

	t.Run("AddThenGet", func(t *testing.T) { testAddThenGet(t, store) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, store) })
	t.Run("UpdateMerges", func(t *testing.T) { testUpdateMerges(t, store) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, store) })
	t.Run("FindFiltersAndOrders", func(t *testing.T) { testFind(t, store) })
	t.Run("CancelledContext", func(t *testing.T) { testCancelled(t, store) })
	if opts.SupportsWatch {
		t.Run("WatchSignalsWrites", func(t *testing.T) { testWatch(t, store, opts.WatchTimeout) })
	} else {
		t.Run("WatchUnsupported", func(t *testing.T) { testWatchUnsupported(t, store) })
	}
}

func collectionName(*testing.T) string {
	return "c_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func testAddThenGet(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	id, err := store.Add(ctx, coll, ports.Record{
		"senderName":  "Acme",
		"status":      "pending",
		"createdAt":   int64(1712345678901),
		"deliveredAt": nil,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := store.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", rec["senderName"])
	assert.Equal(t, "pending", rec["status"])
	assert.Equal(t, int64(1712345678901), cast.ToInt64(rec["createdAt"]))
	v, ok := rec["deliveredAt"]
	assert.True(t, ok, "explicit nil fields are stored")
	assert.Nil(t, v)

	other, err := store.Add(ctx, coll, ports.Record{"senderName": "Other"})
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func testGetMissing(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	_, err := store.Get(ctx, coll, "does-not-exist")
	require.ErrorIs(t, err, ports.ErrDocumentNotFound)

	id, err := store.Add(ctx, coll, ports.Record{"x": "y"})
	require.NoError(t, err)
	_, err = store.Get(ctx, collectionName(t), id)
	require.ErrorIs(t, err, ports.ErrDocumentNotFound, "ids are scoped to their collection")
}

func testUpdateMerges(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	id, err := store.Add(ctx, coll, ports.Record{
		"senderName":     "Acme",
		"status":         "pending",
		"assignedDriver": "UNASSIGNED",
	})
	require.NoError(t, err)

	err = store.Update(ctx, coll, id, ports.Record{
		"status":         "assigned",
		"assignedDriver": "d1",
	})
	require.NoError(t, err)

	rec, err := store.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.Equal(t, "assigned", rec["status"])
	assert.Equal(t, "d1", rec["assignedDriver"])
	assert.Equal(t, "Acme", rec["senderName"], "fields not named in the update are untouched")
}

func testUpdateMissing(t *testing.T, store ports.DocumentStore) {
	err := store.Update(t.Context(), collectionName(t), "does-not-exist", ports.Record{"status": "assigned"})
	require.ErrorIs(t, err, ports.ErrDocumentNotFound)
}

func testFind(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	seed := []ports.Record{
		{"role": "driver", "status": "AVAILABLE", "name": "Charlie", "createdAt": int64(100)},
		{"role": "driver", "status": "OFF_DUTY", "name": "Alice", "createdAt": int64(300)},
		{"role": "dispatcher", "status": "AVAILABLE", "name": "Bob", "createdAt": int64(200)},
		{"role": "driver", "status": "AVAILABLE", "name": "Ann", "createdAt": int64(400)},
	}
	for _, rec := range seed {
		_, err := store.Add(ctx, coll, rec)
		require.NoError(t, err)
	}

	t.Run("equality filters and ascending order", func(t *testing.T) {
		docs, err := store.Find(ctx, coll, ports.Query{
			Filters: []ports.Filter{{Field: "role", Value: "driver"}, {Field: "status", Value: "AVAILABLE"}},
			OrderBy: "name",
		})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "Ann", docs[0].Data["name"])
		assert.Equal(t, "Charlie", docs[1].Data["name"])
		assert.NotEmpty(t, docs[0].ID)
	})

	t.Run("numeric descending order", func(t *testing.T) {
		docs, err := store.Find(ctx, coll, ports.Query{OrderBy: "createdAt", Descending: true})
		require.NoError(t, err)
		require.Len(t, docs, 4)

		var got []int64
		for _, d := range docs {
			got = append(got, cast.ToInt64(d.Data["createdAt"]))
		}
		assert.Equal(t, []int64{400, 300, 200, 100}, got)
	})

	t.Run("missing field sorts last", func(t *testing.T) {
		sparse := collectionName(t)
		for _, rec := range []ports.Record{
			{"name": "Bea"},
			{"role": "driver"},
			{"name": "Al"},
		} {
			_, err := store.Add(ctx, sparse, rec)
			require.NoError(t, err)
		}

		for _, descending := range []bool{false, true} {
			docs, err := store.Find(ctx, sparse, ports.Query{OrderBy: "name", Descending: descending})
			require.NoError(t, err)
			require.Len(t, docs, 3)

			var got []string
			for _, d := range docs {
				got = append(got, cast.ToString(d.Data["name"]))
			}
			want := []string{"Al", "Bea", ""}
			if descending {
				want = []string{"Bea", "Al", ""}
			}
			assert.Equal(t, want, got, "descending=%v", descending)
		}
	})

	t.Run("no match", func(t *testing.T) {
		docs, err := store.Find(ctx, coll, ports.Query{
			Filters: []ports.Filter{{Field: "role", Value: "admin"}},
		})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("empty collection", func(t *testing.T) {
		docs, err := store.Find(ctx, collectionName(t), ports.Query{})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func testCancelled(t *testing.T, store ports.DocumentStore) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := store.Find(ctx, collectionName(t), ports.Query{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ports.ErrDocumentNotFound))

	_, err = store.Add(ctx, collectionName(t), ports.Record{"x": 1})
	require.Error(t, err)
}

func testWatch(t *testing.T, store ports.DocumentStore, timeout time.Duration) {
	ctx := t.Context()
	coll := collectionName(t)

	watcher, err := store.Watch(ctx, coll)
	require.NoError(t, err)

	id, err := store.Add(ctx, coll, ports.Record{"status": "pending"})
	require.NoError(t, err)
	requireSignal(t, watcher, timeout)

	require.NoError(t, store.Update(ctx, coll, id, ports.Record{"status": "assigned"}))
	requireSignal(t, watcher, timeout)

	require.NoError(t, watcher.Close())
	require.NoError(t, watcher.Close())
	assert.NoError(t, watcher.Err())

	deadline := time.After(timeout)
	for {
		select {
		case _, ok := <-watcher.Changes():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("changes channel not closed after Close")
		}
	}
}

func testWatchUnsupported(t *testing.T, store ports.DocumentStore) {
	_, err := store.Watch(t.Context(), collectionName(t))
	require.ErrorIs(t, err, ports.ErrWatchUnsupported)
}

func requireSignal(t *testing.T, watcher ports.Watcher, timeout time.Duration) {
	t.Helper()
	select {
	case _, ok := <-watcher.Changes():
		require.True(t, ok, "watcher stopped: %v", watcher.Err())
	case <-time.After(timeout):
		t.Fatal("no change notification")
	}
}
