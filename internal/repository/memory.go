package repository

import (
	"context"
	"sync"
)

// MemoryStore держит снимок парка в памяти процесса. Используется,
// когда внешнее хранилище не настроено: состояние живёт до рестарта.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Close ничего не освобождает.
func (s *MemoryStore) Close() error {
	return nil
}

// Save запоминает копию снимка.
func (s *MemoryStore) Save(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append([]byte(nil), payload...)
	return nil
}

// Load возвращает сохранённый снимок или nil, если слот пуст.
func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return nil, nil
	}
	return append([]byte(nil), s.payload...), nil
}

// Reset очищает слот.
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	return nil
}
