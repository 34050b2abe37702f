package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	t.Helper()
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestCartOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	okBefore := testutil.ToFloat64(metrics.CartOps.WithLabelValues("add", "ok"))
	oosBefore := testutil.ToFloat64(metrics.CartOps.WithLabelValues("add", "out_of_stock"))

	metrics.CartOps.WithLabelValues("add", "ok").Inc()
	metrics.CartOps.WithLabelValues("add", "ok").Inc()

	if got := testutil.ToFloat64(metrics.CartOps.WithLabelValues("add", "ok")); got != okBefore+2 {
		t.Fatalf("CartOps(add,ok): got=%v want=%v", got, okBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CartOps.WithLabelValues("add", "out_of_stock")); got != oosBefore {
		t.Fatalf("CartOps(add,out_of_stock): got=%v want=%v", got, oosBefore)
	}
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("cart-commands"))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("cart-commands"))

	metrics.KafkaMessagesConsumed.WithLabelValues("cart-commands").Inc()
	metrics.KafkaMessagesFailed.WithLabelValues("cart-commands").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("cart-commands")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("cart-commands")); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestGauges_Set(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CartSize)
	metrics.CartSize.Set(cur + 3)
	if got := testutil.ToFloat64(metrics.CartSize); got != cur+3 {
		t.Fatalf("CartSize after +3: got=%v want=%v", got, cur+3)
	}
	metrics.CartSize.Set(cur) // вернуть как было

	cacheCur := testutil.ToFloat64(metrics.CacheSize)
	metrics.CacheSize.Set(cacheCur + 5)
	if got := testutil.ToFloat64(metrics.CacheSize); got != cacheCur+5 {
		t.Fatalf("CacheSize after +5: got=%v want=%v", got, cacheCur+5)
	}
	metrics.CacheSize.Set(cacheCur)
}

func TestLookupDuration_Observe(t *testing.T) {
	metrics.MustRegister()

	before := testutil.CollectAndCount(metrics.LookupDuration)
	metrics.LookupDuration.WithLabelValues("stock", "ok").Observe(0.01)
	if got := testutil.CollectAndCount(metrics.LookupDuration); got < before {
		t.Fatalf("LookupDuration series count decreased: before=%d after=%d", before, got)
	}
}
