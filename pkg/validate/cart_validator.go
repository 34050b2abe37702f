package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// Проверка, что CartValidator удовлетворяет интерфейсу CartValidator.
var _ ports.CartValidator = (*CartValidator)(nil)

// ErrInvalidCart — базовая (sentinel error) ошибка валидации снимка корзины или команды.
var ErrInvalidCart = errors.New("cart validation failed")

// CartValidator — проверка инвариантов снимка корзины.
type CartValidator struct{}

// NewCartValidator — конструктор CartValidator.
// Validate возвращает ErrInvalidCart (с обёрнутой причиной) при любой проблеме.
func NewCartValidator() *CartValidator { return &CartValidator{} }

// Validate — уникальность productId, amount >= 1, неотрицательная цена.
func (v *CartValidator) Validate(_ context.Context, cart domain.Cart) error {
	seen := make(map[int64]struct{}, len(cart))
	for i := range cart {
		item := &cart[i]
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("%w: items[%d].productId %d повторяется", ErrInvalidCart, i, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}

		if item.Amount < 1 {
			return fmt.Errorf("%w: items[%d].amount должен быть >= 1", ErrInvalidCart, i)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: items[%d].price должен быть неотрицательным", ErrInvalidCart, i)
		}
	}
	return nil
}
