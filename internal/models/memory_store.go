package models

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process. Used for local development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]interface{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]interface{})}
}

func (m *MemoryStore) Get(ctx context.Context, docPath string) (*Document, error) {
	_, _, id, err := splitDocPath(docPath)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	fields, ok := m.docs[strings.Trim(docPath, "/")]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Path: strings.Trim(docPath, "/"), Fields: copyFields(fields)}, nil
}

func (m *MemoryStore) Set(ctx context.Context, docPath string, fields map[string]interface{}, merge bool) error {
	if _, _, _, err := splitDocPath(docPath); err != nil {
		return err
	}
	key := strings.Trim(docPath, "/")
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[key]
	if !merge || !ok {
		m.docs[key] = copyFields(fields)
		return nil
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

// Delete removes one document. Documents nested below it are left in place.
func (m *MemoryStore) Delete(ctx context.Context, docPath string) error {
	if _, _, _, err := splitDocPath(docPath); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.docs, strings.Trim(docPath, "/"))
	m.mu.Unlock()
	return nil
}

// List returns the direct children of a collection ordered by document id.
func (m *MemoryStore) List(ctx context.Context, collectionPath string) ([]*Document, error) {
	if _, _, err := splitCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	prefix := strings.Trim(collectionPath, "/") + "/"
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Document
	for key, fields := range m.docs {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		out = append(out, &Document{ID: rest, Path: key, Fields: copyFields(fields)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) NewID(collectionPath string) string {
	return uuid.New().String()
}
