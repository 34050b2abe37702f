package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — контракт над kafka.Reader (подменяется моками в тестах).
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// commandHandler — разбор команды корзины и вызов операции.
type commandHandler interface {
	HandleCommand(ctx context.Context, raw []byte) error
}

// Consumer — читатель команд корзины с ручным коммитом оффсетов.
type Consumer struct {
	reader         reader
	handler        commandHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — конструктор; незаданные таймауты берутся по умолчанию.
func NewConsumer(cfg *ConsumerConfig, handler commandHandler, log ports.Logger) *Consumer {
	d := cfg.withDefaults()
	return &Consumer{
		reader:         kafka.NewReader(d.ReaderConfig()),
		handler:        handler,
		log:            log,
		processTimeout: d.ProcessTimeout,
		retryInitial:   d.RetryInitial,
		retryMax:       d.RetryMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — цикл чтения команд до отмены контекста.
// Коммит: успех, невалидная команда, отказ корзины (нет остатка / нет позиции / ошибка API).
// Без коммита: ошибка сохранения корзины, команда будет передоставлена.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "cart command consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.handleMessage(ctx, rc.Topic, &msg) {
			c.commitSafely(ctx, &msg)
			continue
		}
		// пауза перед повторной доставкой
		if !c.sleepWithBackoff(ctx, c.withJitterEqual(minDuration(c.retryInitial, 500*time.Millisecond))) {
			return ctx.Err()
		}
	}
}

// fetch — следующее сообщение; ошибки брокера повторяются с экспоненциальным backoff
// и equal-jitter. Ошибку возвращает только отменённый контекст.
func (c *Consumer) fetch(ctx context.Context) (kafka.Message, error) {
	retry := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err == nil {
			return msg, nil
		}
		if ctx.Err() != nil {
			return kafka.Message{}, ctx.Err()
		}

		sleep := c.withJitterEqual(retry)
		c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
		if !c.sleepWithBackoff(ctx, sleep) {
			return kafka.Message{}, ctx.Err()
		}
		retry = c.nextBackoff(retry)
	}
}

// Close — закрывает reader; повторный вызов безопасен.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
