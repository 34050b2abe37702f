package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

func validCart() domain.Cart {
	return domain.Cart{
		{ProductID: 1, Name: "Sneaker", Price: 139.9, ImageURL: "https://img/1.jpg", Amount: 2},
		{ProductID: 2, Name: "Boot", Price: 179.9, ImageURL: "https://img/2.jpg", Amount: 1},
	}
}

func TestCartValidator_Validate(t *testing.T) {
	v := validate.NewCartValidator()
	ctx := context.Background()

	t.Run("valid cart", func(t *testing.T) {
		if err := v.Validate(ctx, validCart()); err != nil {
			t.Fatalf("expected valid cart, got: %v", err)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		if err := v.Validate(ctx, domain.Cart{}); err != nil {
			t.Fatalf("empty cart must be valid, got: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(c domain.Cart) domain.Cart
		msg    string
	}{
		{
			name:   "duplicate product",
			mutate: func(c domain.Cart) domain.Cart { c[1].ProductID = 1; return c },
			msg:    "повторяется",
		},
		{
			name:   "zero amount",
			mutate: func(c domain.Cart) domain.Cart { c[0].Amount = 0; return c },
			msg:    "amount",
		},
		{
			name:   "negative price",
			mutate: func(c domain.Cart) domain.Cart { c[1].Price = -1; return c },
			msg:    "price",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.mutate(validCart()))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, validate.ErrInvalidCart) {
				t.Fatalf("want ErrInvalidCart, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("error %q must mention %q", err, tc.msg)
			}
		})
	}
}
