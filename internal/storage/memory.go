package storage

import (
	"context"

	cmap "github.com/orcaman/concurrent-map/v2"
)

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage keeps values in process memory. Nothing survives a restart.
type MemoryStorage struct {
	m cmap.ConcurrentMap[string, string]
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{m: cmap.New[string]()}
}

func (s *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.m.Get(key)
	return v, ok, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.m.Set(key, value)
	return nil
}

func (s *MemoryStorage) Close() error { return nil }
