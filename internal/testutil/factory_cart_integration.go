//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeCart — валидная корзина из n позиций с id 1..n.
func MakeCart(n int, opts ...func(*domain.LineItem)) domain.Cart {
	cart := make(domain.Cart, 0, n)
	for i := 1; i <= n; i++ {
		item := domain.LineItem{
			ProductID: int64(i),
			Name:      fmt.Sprintf("product-%d-%s", i, UniqSuffix()),
			Price:     float64(i) * 10.5,
			ImageURL:  fmt.Sprintf("https://img.example/%d.jpg", i),
			Amount:    i,
		}
		for _, opt := range opts {
			opt(&item)
		}
		cart = append(cart, item)
	}
	return cart
}

// CartJSON — снимок корзины в том виде, в каком его пишет сервис.
func CartJSON(t *testing.T, cart domain.Cart) string {
	t.Helper()
	raw, err := json.Marshal(cart)
	if err != nil {
		t.Fatalf("marshal cart: %v", err)
	}
	return string(raw)
}
