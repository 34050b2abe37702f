//go:build integration

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

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/wb_cart/internal/cache/memory"
	"github.com/Gunvolt24/wb_cart/internal/client/api"
	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/notify"
	pgrepo "github.com/Gunvolt24/wb_cart/internal/repo/postgres"
	"github.com/Gunvolt24/wb_cart/internal/testutil"
	rest "github.com/Gunvolt24/wb_cart/internal/transport/http"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// Полный сценарий через HTTP: add → add сверх остатка → update → remove, снимок в Postgres после каждого шага
func TestHTTP_CartFlow_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrations(ctx, pg.Pool))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	apiSrv := httptest.NewServer(fakeAPI(map[int64]int{1: 2, 2: 10}))
	defer apiSrv.Close()
	client, err := api.New(api.Config{BaseURL: apiSrv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	store := pgrepo.NewCartStore(pg.Pool)
	catalog := cachemem.NewCachedCatalog(client, cachemem.NewProductCache(100, time.Minute), logg)
	svc := usecase.NewCartService(store, catalog, client, notify.NewLogNotifier(logg), logg, validate.NewCartValidator(), "")
	require.NoError(t, svc.Load(ctx))

	ts := httptest.NewServer(rest.NewRouter(rest.NewHandler(svc, logg, 2*time.Second), "", ""))
	defer ts.Close()

	// 1) пустая корзина
	status, cart := do(t, ts.URL, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, cart)

	// 2) add 1 дважды, третий раз — 409 (остаток 2)
	for i := 0; i < 2; i++ {
		status, _ = do(t, ts.URL, http.MethodPost, "/cart/items", `{"productId":1}`)
		require.Equal(t, http.StatusOK, status)
	}
	status, _ = do(t, ts.URL, http.MethodPost, "/cart/items", `{"productId":1}`)
	require.Equal(t, http.StatusConflict, status)

	// 3) неизвестный товар — 502
	status, _ = do(t, ts.URL, http.MethodPost, "/cart/items", `{"productId":404}`)
	require.Equal(t, http.StatusBadGateway, status)

	// 4) add 2, update 2 → 7
	status, _ = do(t, ts.URL, http.MethodPost, "/cart/items", `{"productId":2}`)
	require.Equal(t, http.StatusOK, status)
	status, cart = do(t, ts.URL, http.MethodPatch, "/cart/items/2", `{"amount":7}`)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, cart, 2)
	require.Equal(t, 7, cart[1].Amount)

	// 5) remove 1; повторно — 404
	status, cart = do(t, ts.URL, http.MethodDelete, "/cart/items/1", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, cart, 1)
	status, _ = do(t, ts.URL, http.MethodDelete, "/cart/items/1", "")
	require.Equal(t, http.StatusNotFound, status)

	// 6) снимок в Postgres совпадает с памятью; новый сервис загружает его же
	raw, found, err := store.Load(ctx, usecase.DefaultCartKey)
	require.NoError(t, err)
	require.True(t, found)
	var stored domain.Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Equal(t, cart, stored)

	reloaded := usecase.NewCartService(store, catalog, client, notify.NewLogNotifier(logg), logg, validate.NewCartValidator(), "")
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, stored, reloaded.Cart(ctx))
}

// -----------------функции-помощники-----------------

func do(t *testing.T, base, method, path, body string) (int, domain.Cart) {
	t.Helper()
	req, err := http.NewRequest(method, base+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var cart domain.Cart
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	}
	return resp.StatusCode, cart
}

// fakeAPI — каталог отдаёт product-{id}, склад — остаток из stock (404 для неизвестных).
func fakeAPI(stock map[int64]int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		var id int64
		_, _ = fmt.Sscan(strings.TrimPrefix(r.URL.Path, "/products/"), &id)
		if _, ok := stock[id]; !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprintf(w, `{"id":%d,"name":"product-%d","price":%d.5,"imageUrl":"https://img/%d.jpg"}`, id, id, id, id)
	})
	mux.HandleFunc("/stock/", func(w http.ResponseWriter, r *http.Request) {
		var id int64
		_, _ = fmt.Sscan(strings.TrimPrefix(r.URL.Path, "/stock/"), &id)
		amount, ok := stock[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprintf(w, `{"id":%d,"amount":%d}`, id, amount)
	})
	return mux
}
