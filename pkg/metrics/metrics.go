package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Операции корзины.
var (
	CartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart operations by result",
		},
		[]string{"op", "result"}, // op: add|remove|update; result: ok|noop|out_of_stock|not_found|lookup_failure|persist_failure
	)
	CartSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_line_items",
			Help: "Number of line items currently in cart",
		},
	)
	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_lookup_duration_seconds",
			Help:    "Latency of catalog/stock lookups",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "result"}, // kind: catalog|stock; result: ok|error
	)
)

// Кэш каталога.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_operations_total",
			Help: "Catalog cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cache_size",
			Help: "Number of products currently in catalog cache",
		},
	)
)

// Kafka: команды корзины и уведомления.
var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	NotificationsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_notifications_published_total",
			Help: "Number of user notifications published",
		},
		[]string{"sink", "result"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре (повторный вызов безопасен).
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CartOps, CartSize, LookupDuration,
			CacheOps, CacheSize,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			NotificationsPublished,
		)
	})
}
