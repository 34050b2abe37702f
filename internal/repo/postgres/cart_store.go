package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что CartStore удовлетворяет интерфейсу CartStore.
var _ ports.CartStore = (*CartStore)(nil)

// CartStore — key-value хранилище снимков корзины в таблице kv_store.
type CartStore struct {
	pool *pgxpool.Pool
}

// NewCartStore — конструктор CartStore.
func NewCartStore(pool *pgxpool.Pool) *CartStore { return &CartStore{pool: pool} }

// Load — значение по ключу; (_, false, nil), если ключа нет.
func (s *CartStore) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select kv %q: %w", key, err)
	}
	return value, true, nil
}

// Save — upsert: значение перезаписывается целиком.
func (s *CartStore) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key is required")
	}
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value); err != nil {
		return fmt.Errorf("upsert kv %q: %w", key, err)
	}
	return nil
}
