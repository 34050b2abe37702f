package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports/mocks"
	rest "github.com/Gunvolt24/wb_cart/internal/transport/http"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var sampleCart = domain.Cart{{ProductID: 1, Name: "Tenis", Price: 139.9, ImageURL: "https://img/1.jpg", Amount: 2}}

func newRouter(t *testing.T, timeout time.Duration) (*mocks.MockCartService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCartService(ctrl)
	return svc, rest.NewRouter(rest.NewHandler(svc, noopLogger{}, timeout), "", "test")
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) domain.Cart {
	t.Helper()
	var got domain.Cart
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	return got
}

func TestGetCart(t *testing.T) {
	svc, r := newRouter(t, 0)
	svc.EXPECT().Cart(gomock.Any()).Return(sampleCart)

	w := serve(r, http.MethodGet, "/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if got := decodeCart(t, w); len(got) != 1 || got[0] != sampleCart[0] {
		t.Fatalf("unexpected cart: %+v", got)
	}
	// поля в формате снимка
	if !strings.Contains(w.Body.String(), `"productId":1`) || !strings.Contains(w.Body.String(), `"imageUrl"`) {
		t.Fatalf("unexpected json layout: %s", w.Body.String())
	}
}

func TestGetCart_EmptyIsArray(t *testing.T) {
	svc, r := newRouter(t, 0)
	svc.EXPECT().Cart(gomock.Any()).Return(domain.Cart{})

	w := serve(r, http.MethodGet, "/cart", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty cart must be [], got %s", w.Body.String())
	}
}

func TestGetSummary(t *testing.T) {
	svc, r := newRouter(t, 0)
	svc.EXPECT().Summary(gomock.Any()).Return(domain.Summary{Items: 3, Total: 30})

	w := serve(r, http.MethodGet, "/cart/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got domain.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || got.Items != 3 || got.Total != 30 {
		t.Fatalf("unexpected summary: %+v err=%v", got, err)
	}
}

func TestAddProduct_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"out_of_stock", fmt.Errorf("x: %w", usecase.ErrOutOfStock), http.StatusConflict},
		{"lookup", fmt.Errorf("x: %w", usecase.ErrLookupFailure), http.StatusBadGateway},
		{"persist", fmt.Errorf("x: %w", usecase.ErrPersistence), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := newRouter(t, 0)
			svc.EXPECT().AddProduct(gomock.Any(), int64(1)).Return(tt.err)
			if tt.err == nil {
				svc.EXPECT().Cart(gomock.Any()).Return(sampleCart)
			}

			w := serve(r, http.MethodPost, "/cart/items", `{"productId":1}`)
			if w.Code != tt.status {
				t.Fatalf("want %d, got %d, body=%s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestAddProduct_OutOfStockMessage(t *testing.T) {
	svc, r := newRouter(t, 0)
	svc.EXPECT().AddProduct(gomock.Any(), int64(1)).Return(usecase.ErrOutOfStock)

	w := serve(r, http.MethodPost, "/cart/items", `{"productId":1}`)
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != domain.MsgOutOfStock {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestAddProduct_BadRequest(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"productId":0}`, `{"productId":"x"}`, `not json`} {
		_, r := newRouter(t, 0) // сервис не вызывается

		w := serve(r, http.MethodPost, "/cart/items", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body=%q: want 400, got %d", body, w.Code)
		}
	}
}

func TestRemoveProduct(t *testing.T) {
	svc, r := newRouter(t, 0)
	gomock.InOrder(
		svc.EXPECT().RemoveProduct(gomock.Any(), int64(1)).Return(nil),
		svc.EXPECT().Cart(gomock.Any()).Return(domain.Cart{}),
		svc.EXPECT().RemoveProduct(gomock.Any(), int64(2)).Return(usecase.ErrNotFound),
	)

	if w := serve(r, http.MethodDelete, "/cart/items/1", ""); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/cart/items/2", ""); w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/cart/items/abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestUpdateProductAmount(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		amount int
		err    error
		status int
	}{
		{"ok", `{"amount":5}`, 5, nil, http.StatusOK},
		{"zero_noop", `{"amount":0}`, 0, nil, http.StatusOK},
		{"negative_noop", `{"amount":-2}`, -2, nil, http.StatusOK},
		{"not_found", `{"amount":1}`, 1, usecase.ErrNotFound, http.StatusNotFound},
		{"out_of_stock", `{"amount":9}`, 9, usecase.ErrOutOfStock, http.StatusConflict},
		{"lookup", `{"amount":2}`, 2, usecase.ErrLookupFailure, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := newRouter(t, 0)
			svc.EXPECT().UpdateProductAmount(gomock.Any(), int64(1), tt.amount).Return(tt.err)
			if tt.err == nil {
				svc.EXPECT().Cart(gomock.Any()).Return(sampleCart)
			}

			w := serve(r, http.MethodPatch, "/cart/items/1", tt.body)
			if w.Code != tt.status {
				t.Fatalf("want %d, got %d, body=%s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateProductAmount_MissingAmount(t *testing.T) {
	_, r := newRouter(t, 0)

	if w := serve(r, http.MethodPatch, "/cart/items/1", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestHandlerTimeout_OperationKeepsRunning(t *testing.T) {
	svc, r := newRouter(t, 20*time.Millisecond)

	finished := make(chan struct{})
	svc.EXPECT().AddProduct(gomock.Any(), int64(1)).DoAndReturn(func(context.Context, int64) error {
		time.Sleep(60 * time.Millisecond)
		close(finished)
		return nil
	})

	w := serve(r, http.MethodPost, "/cart/items", `{"productId":1}`)
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("want 504, got %d", w.Code)
	}

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("operation must complete after the response")
	}
}

func TestPingAndRequestID(t *testing.T) {
	_, r := newRouter(t, 0)

	w := serve(r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("unexpected ping: %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID header must be set")
	}
}
