package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CatalogLookup — карточка товара по идентификатору.
type CatalogLookup interface {
	Product(ctx context.Context, productID int64) (*domain.Product, error)
}

// StockLookup — текущий остаток товара. Результат не кэшируется.
type StockLookup interface {
	Stock(ctx context.Context, productID int64) (*domain.StockRecord, error)
}
