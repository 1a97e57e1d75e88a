// Package memory provides a process-local key-value backend. Data does not
// survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/asservice/shiftboard/internal/core/ports"
)

// KVStore implements ports.KVStore with a guarded map.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore returns an empty KVStore.
func NewKVStore() ports.KVStore {
	return &KVStore{data: make(map[string]string)}
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
