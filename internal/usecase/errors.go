package usecase

import "errors"

// Исходы операций корзины. Любая ошибка операции оборачивает ровно одну из них.
var (
	ErrOutOfStock    = errors.New("requested quantity exceeds available stock")
	ErrNotFound      = errors.New("product is not in cart")
	ErrLookupFailure = errors.New("catalog or stock lookup failed")
	ErrPersistence   = errors.New("cart persistence failed")
)

// resultLabel — метка результата для метрик.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrLookupFailure):
		return "lookup_failure"
	case errors.Is(err, ErrPersistence):
		return "persist_failure"
	default:
		return "error"
	}
}
