//go:build !integration

package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// --- Бенчмарки ---

// GET /cart — сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_GetCart(b *testing.B) {
	h := NewHandler(svcStatic{cart: makeCart(10)}, nopLogger{}, 0)

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServe(b, lean, http.MethodGet, "/cart", "")
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServe(b, full, http.MethodGet, "/cart", "")
	})
}

// Размер корзины: 10/50/100 позиций — рост аллокаций на маршалинге
func BenchmarkHTTP_GetCart_Size(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			h := NewHandler(svcStatic{cart: makeCart(n)}, nopLogger{}, 0)
			benchServe(b, makeLeanRouter(h), http.MethodGet, "/cart", "")
		})
	}
}

// POST /cart/items — разбор тела + ответ корзиной; с таймаутом ответа и без
func BenchmarkHTTP_AddProduct(b *testing.B) {
	body := `{"productId":1}`
	b.Run("no-timeout", func(b *testing.B) {
		h := NewHandler(svcStatic{cart: makeCart(10)}, nopLogger{}, 0)
		benchServe(b, makeLeanRouter(h), http.MethodPost, "/cart/items", body)
	})
	b.Run("with-timeout", func(b *testing.B) {
		h := NewHandler(svcStatic{cart: makeCart(10)}, nopLogger{}, time.Second)
		benchServe(b, makeLeanRouter(h), http.MethodPost, "/cart/items", body)
	})
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стаб ---

// svcStatic — корзина фиксирована, мутации всегда успешны.
type svcStatic struct{ cart domain.Cart }

func (s svcStatic) Cart(context.Context) domain.Cart                      { return s.cart }
func (s svcStatic) Summary(context.Context) domain.Summary                { return s.cart.Summary() }
func (s svcStatic) AddProduct(context.Context, int64) error               { return nil }
func (s svcStatic) RemoveProduct(context.Context, int64) error            { return nil }
func (s svcStatic) UpdateProductAmount(context.Context, int64, int) error { return nil }

// --- функции-помощники ---

func makeCart(n int) domain.Cart {
	cart := make(domain.Cart, 0, n)
	for i := 1; i <= n; i++ {
		cart = append(cart, domain.LineItem{
			ProductID: int64(i),
			Name:      "product-" + strconv.Itoa(i),
			Price:     float64(i),
			ImageURL:  "https://img/" + strconv.Itoa(i) + ".jpg",
			Amount:    1,
		})
	}
	return cart
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger — получаем меньшую аллокацию
	r.GET("/cart", h.getCart)
	r.POST("/cart/items", h.addProduct)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "", "")
}

func benchServe(b *testing.B, r *gin.Engine, method, path, body string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			var req *http.Request
			if body == "" {
				req, _ = http.NewRequest(method, path, nil)
			} else {
				req, _ = http.NewRequest(method, path, strings.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			// вычитываем тело
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
