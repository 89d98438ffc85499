// Package storage persists the flat-file form of the corpus: four CSV tables
// and an update marker, kept in a local directory or an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// Object names of the persisted corpus.
const (
	MoviesObject        = "movies.csv"
	CharactersObject    = "characters.csv"
	ConversationsObject = "conversations.csv"
	LinesObject         = "lines.csv"
	MarkerObject        = "lastUpdated.txt"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore reads and replaces whole named objects.
type ObjectStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// MemoryStore is an ObjectStore backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore(objects map[string][]byte) *MemoryStore {
	s := &MemoryStore{objects: make(map[string][]byte, len(objects))}
	for name, data := range objects {
		s.objects[name] = append([]byte(nil), data...)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[name] = append([]byte(nil), data...)
	return nil
}

// Objects returns a copy of every stored object.
func (s *MemoryStore) Objects() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.objects)
}
