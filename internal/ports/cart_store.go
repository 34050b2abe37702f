package ports

import "context"

// CartStore — долговременное строковое key-value хранилище снимка корзины.
// Читается только при старте, пишется целиком после каждой успешной мутации.
type CartStore interface {
	// Load — вернуть значение по ключу; ("", false, nil), если ключа нет.
	Load(ctx context.Context, key string) (string, bool, error)

	// Save — перезаписать значение по ключу.
	Save(ctx context.Context, key, value string) error
}
