package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidKey возвращается для пустого ключа.
var ErrInvalidKey = errors.New("storage key must not be empty")

// Store - key-value хранилище состояния приложения. Значения сериализуются в JSON.
type Store interface {
	// Get decodes the value stored under key into dst. When the key is
	// missing dst is left untouched, so callers pre-fill it with the fallback.
	Get(ctx context.Context, key string, dst interface{}) error

	Set(ctx context.Context, key string, value interface{}) error
}

type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns a process-local store.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Get(ctx context.Context, key string, dst interface{}) error {
	if key == "" {
		return ErrInvalidKey
	}
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode value for key %s: %w", key, err)
	}
	return nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return ErrInvalidKey
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}
