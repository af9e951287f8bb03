package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
)

// ErrNotFound reports that no todo with the requested id exists.
var ErrNotFound = errors.New("todo not found")

// Store exposes whole-collection persistence for HTTP handlers. The
// collection is always read and written in full; there is no per-item
// access.
type Store interface {
	// EnsureInitialized creates the backing document as an empty array
	// when it is missing, and resets it to an empty array when its
	// contents do not parse. Idempotent.
	EnsureInitialized() error

	// LoadAll returns the full collection in insertion order. Read
	// failures self-heal via EnsureInitialized and yield an empty
	// collection instead of an error.
	LoadAll() []Todo

	// SaveAll overwrites the backing document with the given collection.
	SaveAll(items []Todo) error

	// Update loads the collection, applies fn, and saves the result as
	// one serialized step. When fn returns an error nothing is written
	// and the error passes through.
	Update(fn func(items []Todo) ([]Todo, error)) error
}

// FileStore keeps the collection as a single JSON document on disk.
// The mutex serializes read-modify-write cycles so concurrent mutating
// requests cannot lose each other's writes; it does not protect against
// other processes touching the file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore over the given document path. The
// document is not touched until EnsureInitialized or the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) EnsureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureInitializedLocked()
}

func (s *FileStore) ensureInitializedLocked() error {
	data, err := os.ReadFile(s.path)
	if err == nil {
		var items []Todo
		if json.Unmarshal(data, &items) == nil {
			return nil
		}
		// Corruption is treated the same as absence: the prior
		// content is discarded.
		log.Printf("todo document at %s is not a valid todo array, resetting to empty", s.path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read todo document: %w", err)
	}
	if err := os.WriteFile(s.path, []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("initialize todo document: %w", err)
	}
	return nil
}

func (s *FileStore) LoadAll() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAllLocked()
}

func (s *FileStore) loadAllLocked() []Todo {
	data, err := os.ReadFile(s.path)
	if err == nil {
		var items []Todo
		if err := json.Unmarshal(data, &items); err == nil {
			return items
		}
	}
	if err := s.ensureInitializedLocked(); err != nil {
		log.Printf("failed to recover todo document: %v", err)
	}
	return []Todo{}
}

func (s *FileStore) SaveAll(items []Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAllLocked(items)
}

func (s *FileStore) saveAllLocked(items []Todo) error {
	if items == nil {
		items = []Todo{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todos: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write todo document: %w", err)
	}
	return nil
}

func (s *FileStore) Update(fn func(items []Todo) ([]Todo, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := fn(s.loadAllLocked())
	if err != nil {
		return err
	}
	return s.saveAllLocked(items)
}
