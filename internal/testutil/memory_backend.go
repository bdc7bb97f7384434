package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gayo/internal/store"
)

// MemoryBackend is an in-process store.Backend for handler and use case
// tests. The *Err fields make the matching operation fail.
type MemoryBackend struct {
	mu          sync.Mutex
	collections map[string][]store.Document
	nextID      int

	InsertErr error
	FindErr   error
	CountErr  error
	ListErr   error

	Inserts int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{collections: map[string][]store.Document{}}
}

// Seed stores docs directly, bypassing the insert counters.
func (m *MemoryBackend) Seed(collection string, docs ...store.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		m.nextID++
		doc := copyDoc(d)
		if _, ok := doc[store.IDField]; !ok {
			doc[store.IDField] = fmt.Sprintf("seeded-%d", m.nextID)
		}
		m.collections[collection] = append(m.collections[collection], doc)
	}
}

// Docs returns a copy of everything stored in collection.
func (m *MemoryBackend) Docs(collection string) []store.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Document, 0, len(m.collections[collection]))
	for _, d := range m.collections[collection] {
		out = append(out, copyDoc(d))
	}
	return out
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Insert(_ context.Context, collection string, doc store.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return "", m.InsertErr
	}
	m.nextID++
	id := fmt.Sprintf("%024x", m.nextID)
	stored := copyDoc(doc)
	stored[store.IDField] = id
	m.collections[collection] = append(m.collections[collection], stored)
	m.Inserts++
	return id, nil
}

func (m *MemoryBackend) InsertIfAbsent(_ context.Context, collection, id string, doc store.Document) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return false, m.InsertErr
	}
	for _, d := range m.collections[collection] {
		if d[store.IDField] == id {
			return false, nil
		}
	}
	stored := copyDoc(doc)
	stored[store.IDField] = id
	m.collections[collection] = append(m.collections[collection], stored)
	m.Inserts++
	return true, nil
}

func (m *MemoryBackend) Find(_ context.Context, collection string, filter store.Filter, projection store.Projection) ([]store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := []store.Document{}
	for _, d := range m.collections[collection] {
		if filter.Matches(d) {
			out = append(out, copyDoc(d).Project(projection))
		}
	}
	return out, nil
}

func (m *MemoryBackend) Count(_ context.Context, collection string, filter store.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	var n int64
	for _, d := range m.collections[collection] {
		if filter.Matches(d) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryBackend) CollectionNames(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }

func (m *MemoryBackend) Close(context.Context) error { return nil }

func copyDoc(d store.Document) store.Document {
	out := make(store.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
