package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Notifier удовлетворяет интерфейсу Notifier.
var _ ports.Notifier = (*Notifier)(nil)

const sinkKafka = "kafka"

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// notificationEvent — сообщение в топике уведомлений.
type notificationEvent struct {
	domain.Notification
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier — публикует уведомления корзины в Kafka. Ошибки только логируются:
// уведомление не влияет на результат операции.
type Notifier struct {
	writer writer
	topic  string
	log    ports.Logger
}

// NewNotifier — асинхронный kafka.Writer; ошибки доставки приходят в Completion.
func NewNotifier(cfg *ProducerConfig, log ports.Logger) *Notifier {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	w.Completion = func(messages []kafka.Message, err error) {
		if err == nil {
			return
		}
		metrics.NotificationsPublished.WithLabelValues(sinkKafka, "error").Add(float64(len(messages)))
		log.Errorf(context.Background(), "notification delivery failed topic=%s count=%d err=%v", cfg.Topic, len(messages), err)
	}

	return newNotifier(w, cfg.Topic, log)
}

func newNotifier(w writer, topic string, log ports.Logger) *Notifier {
	return &Notifier{writer: w, topic: topic, log: log}
}

// Notify — ключ сообщения = id товара, чтобы уведомления по товару шли по порядку.
func (n *Notifier) Notify(ctx context.Context, note domain.Notification) {
	event := notificationEvent{Notification: note, CreatedAt: time.Now().UTC()}
	event.RequestID, _ = ctxmeta.RequestIDFromContext(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		metrics.NotificationsPublished.WithLabelValues(sinkKafka, "error").Inc()
		n.log.Errorf(ctx, "notification marshal failed: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(note.ProductID, 10)),
		Value: payload,
	}
	if err := n.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		metrics.NotificationsPublished.WithLabelValues(sinkKafka, "error").Inc()
		n.log.Errorf(ctx, "notification publish failed topic=%s err=%v", n.topic, err)
		return
	}
	metrics.NotificationsPublished.WithLabelValues(sinkKafka, "ok").Inc()
}

// Close — дожидается отправки буфера и закрывает writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
