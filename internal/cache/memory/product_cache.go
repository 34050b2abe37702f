package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

var _ ports.ProductCache = (*ProductCache)(nil)

// ProductCache — LRU-кэш карточек каталога с фиксированным TTL.
// Срок отсчитывается от Set и не продлевается чтением.
// ttl <= 0 — записи не истекают, вытесняются только по ёмкости.
type ProductCache struct {
	lru *expirable.LRU[int64, *domain.Product]
}

func NewProductCache(capacity int, ttl time.Duration) *ProductCache {
	if capacity <= 0 {
		capacity = 1
	}
	// onEvict вызывается под блокировкой LRU: только метрики, без обращений к кэшу.
	onEvict := func(int64, *domain.Product) {
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Dec()
	}
	return &ProductCache{lru: expirable.NewLRU[int64, *domain.Product](capacity, onEvict, ttl)}
}

// Get — копия карточки при попадании.
func (c *ProductCache) Get(_ context.Context, productID int64) (*domain.Product, bool) {
	product, ok := c.lru.Get(productID)
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneProduct(product), true
}

// Set — сохранить/обновить карточку; срок жизни начинается заново. nil и нулевой id игнорируются.
func (c *ProductCache) Set(_ context.Context, product *domain.Product) error {
	if product == nil || product.ID == 0 {
		return nil
	}
	c.lru.Add(product.ID, cloneProduct(product))
	metrics.CacheSize.Set(float64(c.lru.Len()))
	return nil
}

// Len — число актуальных записей.
func (c *ProductCache) Len() int {
	return c.lru.Len()
}

func cloneProduct(product *domain.Product) *domain.Product {
	if product == nil {
		return nil
	}
	cloned := *product
	return &cloned
}
