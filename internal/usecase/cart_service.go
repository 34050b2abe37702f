package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultCartKey — ключ снимка корзины в key-value хранилище.
const DefaultCartKey = "cart"

var _ ports.CartService = (*CartService)(nil)

// CartService — движок корзины: держит актуальную корзину в памяти, проверяет
// мутации по остаткам и зеркалирует снимок в хранилище после каждой успешной мутации.
//
// Операции выполняются строго по одной (opMu удерживается всю операцию, включая
// внешние запросы). Чтение корзины не ждёт внешних запросов (stateMu).
type CartService struct {
	store     ports.CartStore     // долговременная копия снимка
	catalog   ports.CatalogLookup // карточки товаров
	stock     ports.StockLookup   // остатки (всегда свежие)
	notifier  ports.Notifier      // пользовательские уведомления
	log       ports.Logger
	validator ports.CartValidator // проверка снимка при загрузке
	key       string

	opMu    sync.Mutex
	stateMu sync.RWMutex
	cart    domain.Cart
}

// NewCartService — DI-конструктор. Корзина пуста до вызова Load.
func NewCartService(
	store ports.CartStore,
	catalog ports.CatalogLookup,
	stock ports.StockLookup,
	notifier ports.Notifier,
	log ports.Logger,
	validator ports.CartValidator,
	key string,
) *CartService {
	if key == "" {
		key = DefaultCartKey
	}
	return &CartService{
		store:     store,
		catalog:   catalog,
		stock:     stock,
		notifier:  notifier,
		log:       log,
		validator: validator,
		key:       key,
		cart:      domain.Cart{},
	}
}

// Load — загрузка снимка при старте. Отсутствующий или повреждённый снимок даёт
// пустую корзину; ошибку возвращает только недоступное хранилище.
func (s *CartService) Load(ctx context.Context) error {
	raw, found, err := s.store.Load(ctx, s.key)
	if err != nil {
		s.log.Errorf(ctx, "store.Load failed key=%s err=%v", s.key, err)
		return fmt.Errorf("load cart: %w", err)
	}

	cart := domain.Cart{}
	switch {
	case !found:
		s.log.Infof(ctx, "no stored cart key=%s, starting empty", s.key)
	default:
		if parsed, parseErr := s.parseSnapshot(ctx, raw); parseErr != nil {
			s.log.Warnf(ctx, "stored cart is malformed key=%s err=%v, starting empty", s.key, parseErr)
		} else {
			cart = parsed
		}
	}

	s.install(cart)
	s.log.Infof(ctx, "cart loaded key=%s items=%d", s.key, len(cart))
	return nil
}

// Cart — копия текущей корзины (read model).
func (s *CartService) Cart(_ context.Context) domain.Cart {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.cart.Clone()
}

// Summary — количество единиц и сумма по текущей корзине.
func (s *CartService) Summary(ctx context.Context) domain.Summary {
	return s.Cart(ctx).Summary()
}

// AddProduct — добавить одну единицу товара.
// Шаги:
//  1. остаток, затем карточка каталога (любая ошибка → ErrLookupFailure);
//  2. новой позиции нужен остаток >= 1, существующей — остаток больше текущего количества;
//  3. снимок сохраняется, затем устанавливается в память.
func (s *CartService) AddProduct(ctx context.Context, productID int64) error {
	ctx, span := s.begin(ctx, domain.OpAdd, productID)
	defer span.End()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	stock, err := s.fetchStock(ctx, productID)
	if err != nil {
		return s.fail(ctx, span, domain.OpAdd, productID, domain.MsgAddFailed, err)
	}
	product, err := s.fetchProduct(ctx, productID)
	if err != nil {
		return s.fail(ctx, span, domain.OpAdd, productID, domain.MsgAddFailed, err)
	}

	current := s.snapshot()
	var next domain.Cart
	if idx := current.Find(productID); idx < 0 {
		if stock.Amount < 1 {
			return s.fail(ctx, span, domain.OpAdd, productID, domain.MsgOutOfStock,
				fmt.Errorf("%w: product=%d stock=%d", ErrOutOfStock, productID, stock.Amount))
		}
		next = current.Append(domain.NewLineItem(productID, product))
	} else {
		if current[idx].Amount >= stock.Amount {
			return s.fail(ctx, span, domain.OpAdd, productID, domain.MsgOutOfStock,
				fmt.Errorf("%w: product=%d in_cart=%d stock=%d", ErrOutOfStock, productID, current[idx].Amount, stock.Amount))
		}
		next = current.WithAmount(idx, current[idx].Amount+1)
	}

	return s.commit(ctx, span, domain.OpAdd, productID, next)
}

// RemoveProduct — удалить позицию целиком. Внешних запросов нет.
func (s *CartService) RemoveProduct(ctx context.Context, productID int64) error {
	ctx, span := s.begin(ctx, domain.OpRemove, productID)
	defer span.End()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	current := s.snapshot()
	idx := current.Find(productID)
	if idx < 0 {
		return s.fail(ctx, span, domain.OpRemove, productID, domain.MsgRemoveFailed,
			fmt.Errorf("%w: product=%d", ErrNotFound, productID))
	}

	return s.commit(ctx, span, domain.OpRemove, productID, current.Without(idx))
}

// UpdateProductAmount — установить абсолютное количество позиции.
// amount <= 0 — no-op без уведомления. Запрос больше остатка отклоняется целиком
// (значение не урезается до остатка).
func (s *CartService) UpdateProductAmount(ctx context.Context, productID int64, amount int) error {
	ctx, span := s.begin(ctx, domain.OpUpdate, productID)
	defer span.End()
	span.SetAttributes(attribute.Int("cart.amount", amount))

	s.opMu.Lock()
	defer s.opMu.Unlock()

	current := s.snapshot()
	idx := current.Find(productID)
	if idx < 0 {
		return s.fail(ctx, span, domain.OpUpdate, productID, domain.MsgUpdateFailed,
			fmt.Errorf("%w: product=%d", ErrNotFound, productID))
	}

	if amount <= 0 {
		metrics.CartOps.WithLabelValues(domain.OpUpdate, "noop").Inc()
		s.log.Infof(ctx, "update skipped product=%d amount=%d", productID, amount)
		return nil
	}

	// Ошибка запроса остатка сообщается тем же текстом, что и превышение остатка.
	stock, err := s.fetchStock(ctx, productID)
	if err != nil {
		return s.fail(ctx, span, domain.OpUpdate, productID, domain.MsgOutOfStock, err)
	}
	if amount > stock.Amount {
		return s.fail(ctx, span, domain.OpUpdate, productID, domain.MsgOutOfStock,
			fmt.Errorf("%w: product=%d requested=%d stock=%d", ErrOutOfStock, productID, amount, stock.Amount))
	}

	return s.commit(ctx, span, domain.OpUpdate, productID, current.WithAmount(idx, amount))
}

// ------вспомогательные функции------

// begin — операция в контексте логов и спан. Операция не отменяется вместе с
// вызывающим: после старта она всегда доходит до конечного результата.
func (s *CartService) begin(ctx context.Context, op string, productID int64) (context.Context, trace.Span) {
	ctx = ctxmeta.WithOperation(context.WithoutCancel(ctx), op)
	return telemetry.Tracer().Start(ctx, "cart."+op,
		trace.WithAttributes(attribute.Int64("product.id", productID)))
}

func (s *CartService) fetchStock(ctx context.Context, productID int64) (*domain.StockRecord, error) {
	start := time.Now()
	stock, err := s.stock.Stock(ctx, productID)
	if err == nil && stock == nil {
		err = errors.New("empty stock record")
	}
	observeLookup("stock", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: stock product=%d: %w", ErrLookupFailure, productID, err)
	}
	return stock, nil
}

func (s *CartService) fetchProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	start := time.Now()
	product, err := s.catalog.Product(ctx, productID)
	if err == nil && product == nil {
		err = errors.New("empty catalog record")
	}
	observeLookup("catalog", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog product=%d: %w", ErrLookupFailure, productID, err)
	}
	return product, nil
}

// commit — сохраняет снимок целиком и только после успешной записи устанавливает его в память.
func (s *CartService) commit(ctx context.Context, span trace.Span, op string, productID int64, next domain.Cart) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return s.fail(ctx, span, op, productID, domain.MsgPersistFailed, fmt.Errorf("%w: marshal: %w", ErrPersistence, err))
	}
	if err := s.store.Save(ctx, s.key, string(raw)); err != nil {
		return s.fail(ctx, span, op, productID, domain.MsgPersistFailed, fmt.Errorf("%w: %w", ErrPersistence, err))
	}

	s.install(next)
	metrics.CartOps.WithLabelValues(op, resultLabel(nil)).Inc()
	s.log.Infof(ctx, "cart %s ok product=%d items=%d", op, productID, len(next))
	return nil
}

// fail — уведомление, лог, метрика и статус спана; состояние не меняется.
func (s *CartService) fail(ctx context.Context, span trace.Span, op string, productID int64, msg string, err error) error {
	s.notifier.Notify(ctx, domain.Notification{
		Severity:  domain.SeverityError,
		Message:   msg,
		Op:        op,
		ProductID: productID,
	})

	result := resultLabel(err)
	metrics.CartOps.WithLabelValues(op, result).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, result)

	if errors.Is(err, ErrOutOfStock) || errors.Is(err, ErrNotFound) {
		s.log.Warnf(ctx, "cart %s rejected product=%d err=%v", op, productID, err)
	} else {
		s.log.Errorf(ctx, "cart %s failed product=%d err=%v", op, productID, err)
	}
	return err
}

func (s *CartService) snapshot() domain.Cart {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.cart
}

func (s *CartService) install(cart domain.Cart) {
	s.stateMu.Lock()
	s.cart = cart
	s.stateMu.Unlock()
	metrics.CartSize.Set(float64(len(cart)))
}

func (s *CartService) parseSnapshot(ctx context.Context, raw string) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, err
	}
	if cart == nil {
		return domain.Cart{}, nil
	}
	if err := s.validator.Validate(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func observeLookup(kind string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.LookupDuration.WithLabelValues(kind, result).Observe(time.Since(start).Seconds())
}
