package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CartService — операции корзины для транспортного слоя.
type CartService interface {
	Cart(ctx context.Context) domain.Cart
	Summary(ctx context.Context) domain.Summary
	AddProduct(ctx context.Context, productID int64) error
	RemoveProduct(ctx context.Context, productID int64) error
	UpdateProductAmount(ctx context.Context, productID int64, amount int) error
}
