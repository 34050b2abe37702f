package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/httpx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrLookup — запрос к API не удался: транспорт, не-2xx или невалидный JSON.
	ErrLookup = errors.New("api lookup failed")
	// ErrUnknownProduct — API ответил 404 на товар или остаток.
	ErrUnknownProduct = errors.New("unknown product")
)

// Проверка, что Client удовлетворяет интерфейсам каталога и остатков.
var (
	_ ports.CatalogLookup = (*Client)(nil)
	_ ports.StockLookup   = (*Client)(nil)
)

// maxBodyBytes — ограничение на размер ответа API.
const maxBodyBytes = 1 << 20

// Config — параметры клиента.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client — HTTP-клиент каталога и склада:
//
//	GET {base}/products/{id} → {id,name,price,imageUrl}
//	GET {base}/stock/{id}    → {id,amount}
type Client struct {
	base string
	http *http.Client
}

// New — клиент с otelhttp-транспортом. Таймаут клиента ограничивает каждую операцию
// сверху, поскольку контекст вызывающего до клиента не доходит отменённым.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api base url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// Product — карточка каталога.
func (c *Client) Product(ctx context.Context, productID int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.getJSON(ctx, "/products/"+strconv.FormatInt(productID, 10), &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out.ID = productID
	}
	return &out, nil
}

// Stock — текущий остаток.
func (c *Client) Stock(ctx context.Context, productID int64) (*domain.StockRecord, error) {
	var out domain.StockRecord
	if err := c.getJSON(ctx, "/stock/"+strconv.FormatInt(productID, 10), &out); err != nil {
		return nil, err
	}
	if out.ProductID == 0 {
		out.ProductID = productID
	}
	return &out, nil
}

// ------вспомогательные функции------

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: build request %s: %w", ErrLookup, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		req.Header.Set(httpx.HeaderRequestID, rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrLookup, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrLookup, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w: GET %s", ErrLookup, ErrUnknownProduct, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: GET %s http %d: %s", ErrLookup, path, resp.StatusCode, truncate(raw, 200))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrLookup, path, err)
	}
	return nil
}

func truncate(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}
