package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

var _ ports.CartStore = (*CartStore)(nil)

// CartStore — key-value хранилище в памяти процесса (локальный запуск, тесты).
type CartStore struct {
	mu     sync.RWMutex
	data   map[string]string
	writes int
}

func NewCartStore() *CartStore {
	return &CartStore{data: make(map[string]string)}
}

func (s *CartStore) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *CartStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.writes++
	return nil
}

// Writes — число успешных Save с момента создания.
func (s *CartStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
