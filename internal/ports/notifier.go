package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// Notifier — канал пользовательских уведомлений. Ничего не возвращает
// и не может сорвать операцию, к которой относится.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}
