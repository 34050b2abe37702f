package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// ProductCache — кэш карточек каталога.
// Требования к реализации: потокобезопасность, возврат копий сущности,
// фиксированный TTL от момента записи (чтение срок не продлевает).
type ProductCache interface {
	// Get — (product, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, productID int64) (*domain.Product, bool)

	// Set — сохранить/обновить карточку.
	Set(ctx context.Context, product *domain.Product) error
}
