package config_test

import (
	"slices"
	"strings"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/wb_cart/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("CART_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second ||
		c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP handler/graceful timeouts wrong: %+v", c.HTTP)
	}

	// Metrics / Tracing / Logger
	if c.Metrics.Addr != ":2112" {
		t.Fatalf("Metrics.Addr: want :2112, got %q", c.Metrics.Addr)
	}
	if c.Tracing.Enabled || c.Tracing.ServiceName != "cart-app" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}

	// Хранилище
	if c.Store.Driver != cfg.StoreDriverPostgres || c.Store.Key != "cart" {
		t.Fatalf("Store defaults wrong: %+v", c.Store)
	}
	if c.Postgres.DSN == "" || c.Postgres.MaxConns != 10 || c.Postgres.MigrationsDir != "migrations" {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}
	if c.Redis.Addr != "redis:6379" || c.Redis.KeyPrefix != "wb_cart:" || c.Redis.DialTimeout != 5*time.Second {
		t.Fatalf("Redis defaults wrong: %+v", c.Redis)
	}

	// API / Cache
	if c.API.BaseURL == "" || c.API.Timeout != 3*time.Second {
		t.Fatalf("API defaults wrong: %+v", c.API)
	}
	if c.Cache.Capacity != 1000 || c.Cache.TTL != 10*time.Minute {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Kafka
	if c.Kafka.Enabled || c.Kafka.NotifyEnabled {
		t.Fatalf("Kafka must be disabled by default: %+v", c.Kafka)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka.Brokers: want [kafka:9092], got %v", c.Kafka.Brokers)
	}
	if c.Kafka.Topic != "cart-commands" || c.Kafka.GroupID != "cart" || c.Kafka.StartOffset != "last" || c.Kafka.NotifyTopic != "cart-notifications" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 5*time.Second || c.Kafka.RetryInitial != 1*time.Second || c.Kafka.RetryMax != 30*time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "CART_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_HTTP_STATIC_DIR", "./web")
	t.Setenv(p+"_METRICS_ADDR", ":9998")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_STORE_DRIVER", " Redis ")
	t.Setenv(p+"_STORE_KEY", "cart-42")
	t.Setenv(p+"_REDIS_ADDR", "127.0.0.1:6380")
	t.Setenv(p+"_REDIS_DB", "3")
	t.Setenv(p+"_API_BASE_URL", "http://api.local")
	t.Setenv(p+"_API_TIMEOUT", "750ms")
	t.Setenv(p+"_KAFKA_ENABLED", "true")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_START_OFFSET", "first")
	t.Setenv(p+"_KAFKA_NOTIFY_ENABLED", "true")
	t.Setenv(p+"_KAFKA_NOTIFY_TOPIC", "notes")
	t.Setenv(p+"_CACHE_TTL", "30m")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || c.HTTP.HandlerTimeout != 4500*time.Millisecond || c.HTTP.StaticDir != "./web" {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.Metrics.Addr != ":9998" || !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("observability overrides wrong: %+v %+v", c.Metrics, c.Tracing)
	}
	// драйвер нормализуется
	if c.Store.Driver != cfg.StoreDriverRedis || c.Store.Key != "cart-42" {
		t.Fatalf("Store overrides wrong: %+v", c.Store)
	}
	if c.Redis.Addr != "127.0.0.1:6380" || c.Redis.DB != 3 {
		t.Fatalf("Redis overrides wrong: %+v", c.Redis)
	}
	if c.API.BaseURL != "http://api.local" || c.API.Timeout != 750*time.Millisecond {
		t.Fatalf("API overrides wrong: %+v", c.API)
	}
	if !c.Kafka.Enabled || !c.Kafka.NotifyEnabled || c.Kafka.NotifyTopic != "notes" || c.Kafka.StartOffset != "first" ||
		!slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if c.Cache.TTL != 30*time.Minute || !c.Logger.IsProd {
		t.Fatalf("Cache/Logger overrides wrong: %+v %+v", c.Cache, c.Logger)
	}
}

func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad_duration", "_HTTP_READ_TIMEOUT", "not-a-duration"},
		{"unknown_driver", "_STORE_DRIVER", "sqlite"},
		{"empty_key", "_STORE_KEY", " "},
		{"ratio_out_of_range", "_TRACING_OTEL_SAMPLE_RATIO", "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := "CART_TEST_BAD_" + strings.ToUpper(tt.name)
			t.Setenv(p+tt.key, tt.value)

			if _, err := cfg.LoadWithPrefix(p); err == nil {
				t.Fatalf("expected error for %s=%q, got nil", tt.key, tt.value)
			}
		})
	}
}
