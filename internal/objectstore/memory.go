package objectstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nvoronin/inkwell/models"
)

// MemoryStore is an in-memory [ObjectStore] used in tests. Uploads happen
// out of band against the presigned URL in production, so the fake exposes
// Put to stand in for a completed upload.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]int64)}
}

// Put records an object of the given size, as if a client had completed the
// authorized upload.
func (m *MemoryStore) Put(key string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = size
}

func (m *MemoryStore) PresignPut(_ context.Context, key, _ string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("memory://upload/%s?expires=%ds", key, int(ttl.Seconds())), nil
}

func (m *MemoryStore) Head(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	size, ok := m.objects[key]
	if !ok {
		return 0, ErrObjectNotFound
	}
	return size, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]models.StorageObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var objects []models.StorageObject
	for key, size := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, models.StorageObject{Key: key, Size: size})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })

	return objects, nil
}
