package todo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.json")
	return NewFileStore(path), path
}

func TestEnsureInitializedCreatesEmptyDocument(t *testing.T) {
	store, path := newTestStore(t)

	if err := store.EnsureInitialized(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	var items []Todo
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("document is not a valid todo array: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(items))
	}
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	store, path := newTestStore(t)

	item := New("keep me")
	if err := store.SaveAll([]Todo{item}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.EnsureInitialized(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.EnsureInitialized(); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}

	data, _ := os.ReadFile(path)
	var items []Todo
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("document corrupted: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("existing content was not preserved: %+v", items)
	}
}

func TestLoadAllRecoversFromCorruption(t *testing.T) {
	store, path := newTestStore(t)

	if err := os.WriteFile(path, []byte("not json at all{{"), 0o644); err != nil {
		t.Fatalf("failed to corrupt document: %v", err)
	}

	items := store.LoadAll()
	if len(items) != 0 {
		t.Fatalf("expected empty collection after corruption, got %d items", len(items))
	}

	// The document must have been reset to a valid empty array.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	var recovered []Todo
	if err := json.Unmarshal(data, &recovered); err != nil {
		t.Fatalf("document was not repaired: %v", err)
	}
	if len(recovered) != 0 {
		t.Fatalf("expected repaired document to be empty, got %d items", len(recovered))
	}
}

func TestLoadAllMissingFileYieldsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	items := store.LoadAll()
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(items))
	}
}

func TestSaveAllLoadAllRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	first := New("first")
	second := New("second")
	second.Touch()
	if err := store.SaveAll([]Todo{first, second}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	items := store.LoadAll()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != second.ID {
		t.Fatalf("insertion order not preserved: %+v", items)
	}
	if items[0].Text != "first" || items[0].Status != StatusPending {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[0].UpdatedAt != nil {
		t.Fatalf("expected updatedAt to be absent before first update")
	}
	if items[1].UpdatedAt == nil {
		t.Fatalf("expected updatedAt to survive the round trip")
	}
}

func TestUpdateAppliesTransform(t *testing.T) {
	store, _ := newTestStore(t)

	created := New("via update")
	err := store.Update(func(items []Todo) ([]Todo, error) {
		return append(items, created), nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	items := store.LoadAll()
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("transform was not persisted: %+v", items)
	}
}

func TestUpdateAbortsWithoutSavingOnError(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.SaveAll([]Todo{New("survivor")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	err := store.Update(func(items []Todo) ([]Todo, error) {
		return nil, ErrNotFound
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound to pass through, got %v", err)
	}

	items := store.LoadAll()
	if len(items) != 1 || items[0].Text != "survivor" {
		t.Fatalf("collection was mutated despite transform error: %+v", items)
	}
}
