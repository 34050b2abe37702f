package rest

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// errHandlerTimeout — ответ клиенту не дождался операции; сама операция доводится до конца.
var errHandlerTimeout = errors.New("handler timeout")

type Handler struct {
	service ports.CartService
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — timeout <= 0 отключает ограничение времени ответа.
func NewHandler(service ports.CartService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

// NewRouter — otelServiceName пустой — без otelgin.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cart := r.Group("/cart")
	cart.GET("", h.getCart)
	cart.GET("/summary", h.getSummary)
	cart.POST("/items", h.addProduct)
	cart.DELETE("/items/:id", h.removeProduct)
	cart.PATCH("/items/:id", h.updateProductAmount)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

type addProductRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
}

type updateAmountRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Cart(c.Request.Context()))
}

func (h *Handler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Summary(c.Request.Context()))
}

func (h *Handler) addProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId must be a positive integer"})
		return
	}
	h.respond(c, domain.OpAdd, req.ProductID, func(ctx context.Context) error {
		return h.service.AddProduct(ctx, req.ProductID)
	})
}

func (h *Handler) removeProduct(c *gin.Context) {
	id, err := httpx.ParseProductID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, domain.OpRemove, id, func(ctx context.Context) error {
		return h.service.RemoveProduct(ctx, id)
	})
}

func (h *Handler) updateProductAmount(c *gin.Context) {
	id, err := httpx.ParseProductID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req updateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be an integer"})
		return
	}
	h.respond(c, domain.OpUpdate, id, func(ctx context.Context) error {
		return h.service.UpdateProductAmount(ctx, id, *req.Amount)
	})
}

// respond — выполняет операцию и отвечает актуальной корзиной или ошибкой.
func (h *Handler) respond(c *gin.Context, op string, productID int64, run func(ctx context.Context) error) {
	ctx := c.Request.Context()
	if err := h.call(ctx, run); err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.log.Errorf(ctx, "cart %s failed product=%d status=%d err=%v", op, productID, status, err)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, h.service.Cart(ctx))
}

// call — операция в отдельной горутине, ответ ограничен h.timeout.
func (h *Handler) call(ctx context.Context, run func(ctx context.Context) error) error {
	if h.timeout <= 0 {
		return run(ctx)
	}
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return errHandlerTimeout
	}
}

// errorStatus — HTTP-статус и текст ошибки по исходу операции корзины.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrOutOfStock):
		return http.StatusConflict, domain.MsgOutOfStock
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, "product is not in cart"
	case errors.Is(err, usecase.ErrLookupFailure):
		return http.StatusBadGateway, "catalog or stock service unavailable"
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError, domain.MsgPersistFailed
	case errors.Is(err, errHandlerTimeout):
		return http.StatusGatewayTimeout, "operation is still in progress"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
