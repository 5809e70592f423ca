package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory driver for development and tests.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memDocument
	seq         int64
}

type memDocument struct {
	data      map[string]any
	createdAt time.Time
	updatedAt time.Time
	seq       int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		collections: make(map[string]map[string]*memDocument),
	}
}

func (s *MemStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}

	return &Document{
		ID:        id,
		Data:      cloneData(entry.data),
		CreatedAt: entry.createdAt,
		UpdatedAt: entry.updatedAt,
	}, nil
}

func (s *MemStore) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.collections[collection]
	type keyed struct {
		id    string
		entry *memDocument
	}

	ordered := make([]keyed, 0, len(entries))
	for id, entry := range entries {
		ordered = append(ordered, keyed{id: id, entry: entry})
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].entry, ordered[j].entry
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.After(b.createdAt)
		}
		return a.seq > b.seq
	})

	docs := make([]Document, 0, len(ordered))
	for _, k := range ordered {
		docs = append(docs, Document{
			ID:        k.id,
			Data:      cloneData(k.entry.data),
			CreatedAt: k.entry.createdAt,
			UpdatedAt: k.entry.updatedAt,
		})
	}
	return docs, nil
}

func (s *MemStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	entries, ok := s.collections[collection]
	if !ok {
		entries = make(map[string]*memDocument)
		s.collections[collection] = entries
	}

	if existing, ok := entries[id]; ok {
		existing.data = cloneData(data)
		existing.updatedAt = now
		return nil
	}

	s.seq++
	entries[id] = &memDocument{
		data:      cloneData(data),
		createdAt: now,
		updatedAt: now,
		seq:       s.seq,
	}
	return nil
}

func (s *MemStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	entries, ok := s.collections[collection]
	if !ok {
		entries = make(map[string]*memDocument)
		s.collections[collection] = entries
	}

	existing, ok := entries[id]
	if !ok {
		s.seq++
		entries[id] = &memDocument{
			data:      cloneData(fields),
			createdAt: now,
			updatedAt: now,
			seq:       s.seq,
		}
		return nil
	}

	merged := cloneData(existing.data)
	if merged == nil {
		merged = make(map[string]any)
	}
	for k, v := range cloneData(fields) {
		merged[k] = v
	}
	existing.data = merged
	existing.updatedAt = now
	return nil
}

func (s *MemStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *MemStore) Close(ctx context.Context) error {
	return nil
}

// cloneData deep-copies a document payload so callers can't mutate stored
// state through returned maps. Payloads are JSON-shaped by construction.
func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return map[string]any{}
	}

	var clone map[string]any
	if err := json.Unmarshal(payload, &clone); err != nil {
		return map[string]any{}
	}
	return clone
}
