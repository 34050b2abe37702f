package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// CartFromJSON — строгий разбор снимка корзины и проверка инвариантов.
func CartFromJSON(ctx context.Context, validator ports.CartValidator, raw []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := decodeStrict(raw, &cart); err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("%w: snapshot is null", ErrInvalidCart)
	}
	if err := validator.Validate(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CommandFromJSON — строгий разбор команды корзины.
func CommandFromJSON(raw []byte) (*domain.Command, error) {
	var cmd domain.Command
	if err := decodeStrict(raw, &cmd); err != nil {
		return nil, err
	}
	switch cmd.Op {
	case domain.OpAdd, domain.OpRemove, domain.OpUpdate:
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidCart, cmd.Op)
	}
	if cmd.ProductID <= 0 {
		return nil, fmt.Errorf("%w: productId must be positive, got %d", ErrInvalidCart, cmd.ProductID)
	}
	return &cmd, nil
}

// decodeStrict — DisallowUnknownFields и запрет данных после объекта.
func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrInvalidCart, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("%w: invalid json: trailing data", ErrInvalidCart)
	}
	return nil
}
