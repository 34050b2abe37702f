package memory

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

var _ ports.CatalogLookup = (*CachedCatalog)(nil)

// CachedCatalog — read-through кэш поверх каталога. Ошибки каталога не кэшируются.
// Остатки через этот декоратор не ходят: они должны быть свежими на каждой операции.
type CachedCatalog struct {
	next  ports.CatalogLookup
	cache ports.ProductCache
	log   ports.Logger
}

func NewCachedCatalog(next ports.CatalogLookup, cache ports.ProductCache, log ports.Logger) *CachedCatalog {
	return &CachedCatalog{next: next, cache: cache, log: log}
}

func (c *CachedCatalog) Product(ctx context.Context, productID int64) (*domain.Product, error) {
	if product, ok := c.cache.Get(ctx, productID); ok {
		return product, nil
	}

	product, err := c.next.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, product); err != nil {
		c.log.Warnf(ctx, "catalog cache set failed product=%d err=%v", productID, err)
	}
	return product, nil
}
