package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// CommandHandler — разбор внешней команды (Kafka) и вызов соответствующей операции корзины.
type CommandHandler struct {
	cart ports.CartService
	log  ports.Logger
}

func NewCommandHandler(cart ports.CartService, log ports.Logger) *CommandHandler {
	return &CommandHandler{cart: cart, log: log}
}

// HandleCommand — невалидная команда даёт ошибку с validate.ErrInvalidCart,
// иначе возвращается результат операции корзины как есть.
func (h *CommandHandler) HandleCommand(ctx context.Context, raw []byte) error {
	cmd, err := validate.CommandFromJSON(raw)
	if err != nil {
		h.log.Warnf(ctx, "invalid cart command: %v", err)
		return err
	}

	switch cmd.Op {
	case domain.OpAdd:
		return h.cart.AddProduct(ctx, cmd.ProductID)
	case domain.OpRemove:
		return h.cart.RemoveProduct(ctx, cmd.ProductID)
	case domain.OpUpdate:
		return h.cart.UpdateProductAmount(ctx, cmd.ProductID, cmd.Amount)
	default:
		return fmt.Errorf("%w: unknown op %q", validate.ErrInvalidCart, cmd.Op)
	}
}

// IsRejection — операция отклонена бизнес-правилом или внешним API;
// повторная доставка той же команды результат не изменит.
func IsRejection(err error) bool {
	switch resultLabel(err) {
	case "out_of_stock", "not_found", "lookup_failure":
		return true
	default:
		return false
	}
}
