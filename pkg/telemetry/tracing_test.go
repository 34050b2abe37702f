package telemetry_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
)

func TestClampRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"inside", 0.25, 0.25},
		{"one", 1, 1},
		{"above", 3, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := telemetry.ClampRatio(tt.in); got != tt.want {
				t.Fatalf("ClampRatio(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTracer_NoopWithoutSetup(t *testing.T) {
	_, span := telemetry.Tracer().Start(context.Background(), "noop")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Fatalf("span must be no-op before SetupTracing")
	}
}
