package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func item(id, entity string, priority int) Item {
	return Item{
		ID:        id,
		Entity:    entity,
		Operation: OperationUpdate,
		Data:      json.RawMessage(`{}`),
		Priority:  priority,
	}
}

func TestEnqueueAndDrainOrder(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(item("low", EntityIntervention, 4)))
	require.NoError(t, store.Enqueue(item("high", EntityContact, 1)))
	require.NoError(t, store.Enqueue(item("mid", EntityContact, 3)))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 3, size)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Keys sort by priority first, then enqueue time.
	require.Equal(t, "high", items[0].ID)
	require.Equal(t, "mid", items[1].ID)
	require.Equal(t, "low", items[2].ID)
}

func TestGetBatchRespectsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Enqueue(item("", EntityContact, 3)))
	}

	items, err := store.GetBatch(2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// GetBatch peeks without removing.
	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 5, size)
}

func TestRemoveAndRequeue(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(item("keep", EntityContact, 3)))
	require.NoError(t, store.Enqueue(item("drop", EntityContact, 3)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	for _, it := range items {
		if it.ID == "drop" {
			require.NoError(t, store.Remove(it))
		}
	}

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)

	// Requeue re-inserts with a fresh timestamp.
	items, err = store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	items[0].Retries = 2
	require.NoError(t, store.Remove(items[0]))
	require.NoError(t, store.Requeue(items[0]))

	items, err = store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "keep", items[0].ID)
	require.Equal(t, 2, items[0].Retries)
}

func TestCleanupDropsStaleItems(t *testing.T) {
	store := openTestStore(t)

	stale := item("stale", EntityContact, 3)
	stale.Timestamp = time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Enqueue(stale))
	require.NoError(t, store.Enqueue(item("fresh", EntityContact, 3)))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "fresh", items[0].ID)
}
