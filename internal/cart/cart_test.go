package cart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *MemoryStorage) {
	storage := NewMemoryStorage()
	return NewStore(storage), storage
}

func tomatoItem(quantity int) Item {
	return Item{
		ID:       "p1",
		Name:     "Tomato",
		Price:    2,
		Unit:     "kg",
		Quantity: quantity,
	}
}

func TestStore_AddItem_Appends(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_AddItem_MergesByID(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))

	// Same id with different descriptive fields: quantity sums, the
	// existing entry's fields win.
	store.AddItem(Item{ID: "p1", Name: "Renamed", Price: 99, Unit: "box", Quantity: 3})

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "Tomato", items[0].Name)
	assert.Equal(t, float64(2), items[0].Price)
	assert.Equal(t, "kg", items[0].Unit)
}

func TestStore_AddItem_Uniqueness(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(Item{ID: "a", Name: "Apples", Price: 1.5, Unit: "kg", Quantity: 1})
	store.AddItem(Item{ID: "b", Name: "Basil", Price: 2, Unit: "bunch", Quantity: 1})
	store.AddItem(Item{ID: "a", Name: "Apples", Price: 1.5, Unit: "kg", Quantity: 4})
	store.AddItem(Item{ID: "b", Name: "Basil", Price: 2, Unit: "bunch", Quantity: 2})

	items := store.Items()
	require.Len(t, items, 2)

	seen := map[string]int{}
	for _, item := range items {
		seen[item.ID] = item.Quantity
	}
	assert.Equal(t, 5, seen["a"])
	assert.Equal(t, 3, seen["b"])
}

func TestStore_UpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))
	store.UpdateQuantity("p1", 7)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestStore_UpdateQuantity_ZeroRemoves(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))
	store.UpdateQuantity("p1", 0)

	assert.Empty(t, store.Items())
	assert.Equal(t, float64(0), store.Total())
}

func TestStore_UpdateQuantity_NegativeRemoves(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))
	store.UpdateQuantity("p1", -3)

	assert.Empty(t, store.Items())
}

func TestStore_UpdateQuantity_AbsentID_NoOp(t *testing.T) {
	store, storage := newTestStore()

	store.AddItem(tomatoItem(2))
	persistedBefore, _ := storage.Load()

	store.UpdateQuantity("missing", 0)
	store.UpdateQuantity("missing", 5)

	// Nothing created, nothing removed, nothing rewritten.
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)

	persistedAfter, _ := storage.Load()
	assert.Equal(t, persistedBefore, persistedAfter)
}

func TestStore_RemoveItem(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))
	store.AddItem(Item{ID: "p2", Name: "Carrot", Price: 1, Unit: "kg", Quantity: 4})

	store.RemoveItem("p1")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)

	// Removing again is a safe no-op
	store.RemoveItem("p1")
	assert.Len(t, store.Items(), 1)
}

func TestStore_Total(t *testing.T) {
	store, _ := newTestStore()
	assert.Equal(t, float64(0), store.Total())

	store.AddItem(Item{ID: "a", Price: 2.5, Unit: "kg", Quantity: 3})
	store.AddItem(Item{ID: "b", Price: 1, Unit: "kg", Quantity: 4})

	assert.InDelta(t, 11.5, store.Total(), 1e-9)
}

func TestStore_Clear_Idempotent(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))
	store.Clear()
	assert.Empty(t, store.Items())
	assert.Equal(t, float64(0), store.Total())

	store.Clear()
	assert.Empty(t, store.Items())
	assert.Equal(t, float64(0), store.Total())
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)

	store.AddItem(Item{ID: "p1", Name: "Tomato", Price: 2, Unit: "kg", Quantity: 3, FarmerName: "Green Acres"})
	store.AddItem(Item{ID: "p2", Name: "Honey", Price: 8.5, Unit: "jar", Quantity: 1, ImageURL: "https://img/honey.jpg"})
	store.UpdateQuantity("p2", 2)

	// Rehydrate a fresh store from the same slot
	rehydrated := NewStore(storage)

	want := map[string]Item{}
	for _, item := range store.Items() {
		want[item.ID] = item
	}
	got := map[string]Item{}
	for _, item := range rehydrated.Items() {
		got[item.ID] = item
	}

	assert.Equal(t, want, got)
	assert.Equal(t, store.Total(), rehydrated.Total())
}

func TestStore_Scenario_AddMergeThenZero(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(tomatoItem(2))
	store.AddItem(tomatoItem(1))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, float64(6), store.Total())

	store.UpdateQuantity("p1", 0)
	assert.Empty(t, store.Items())
	assert.Equal(t, float64(0), store.Total())
}

func TestNewStore_EmptySlot(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	assert.Empty(t, store.Items())
	assert.Equal(t, float64(0), store.Total())
}

func TestNewStore_MalformedSlot_StartsEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save([]byte("{not json")))

	store := NewStore(storage)
	assert.Empty(t, store.Items())

	// The store stays usable afterwards
	store.AddItem(tomatoItem(1))
	assert.Len(t, store.Items(), 1)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), StorageKey+".json")
	storage := NewFileStorage(path)

	// Missing file reads as no prior value
	data, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	store := NewStore(storage)
	store.AddItem(tomatoItem(2))
	store.AddItem(Item{ID: "p2", Name: "Eggs", Price: 4, Unit: "dozen", Quantity: 1})

	rehydrated := NewStore(NewFileStorage(path))
	assert.Len(t, rehydrated.Items(), 2)
	assert.Equal(t, store.Total(), rehydrated.Total())
}

func TestFileStorage_LastWriterWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), StorageKey+".json")

	first := NewStore(NewFileStorage(path))
	second := NewStore(NewFileStorage(path))

	first.AddItem(tomatoItem(2))
	second.AddItem(Item{ID: "p9", Name: "Plums", Price: 3, Unit: "kg", Quantity: 5})

	// The second writer's full snapshot replaced the first's
	rehydrated := NewStore(NewFileStorage(path))
	items := rehydrated.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p9", items[0].ID)
}
