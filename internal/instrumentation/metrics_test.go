package instrumentation

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func testMetrics(t *testing.T) *Metrics {
	t.Helper()
	meter := sdkmetric.NewMeterProvider().Meter("test")
	m, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m
}

func TestMetrics_RecordServiceOperation(t *testing.T) {
	ctx := context.Background()
	metrics := testMetrics(t)

	// Should not panic
	metrics.RecordServiceOperation(ctx, ServiceCalendar, "list", StatusSuccess, 200*time.Millisecond)
	metrics.RecordServiceOperation(ctx, ServiceCalendar, "create", StatusError, 500*time.Millisecond)
	metrics.RecordServiceOperation(ctx, ServiceGeo, "lookup", StatusSuccess, 100*time.Millisecond)
	metrics.RecordServiceOperation(ctx, ServiceSearch, "search", StatusSuccess, 300*time.Millisecond)
}

func TestMetrics_RecordOAuthAuth(t *testing.T) {
	ctx := context.Background()
	metrics := testMetrics(t)

	// Should not panic
	metrics.RecordOAuthAuth(ctx, OAuthResultSuccess)
	metrics.RecordOAuthAuth(ctx, OAuthResultFailure)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx := context.Background()
	metrics := testMetrics(t)

	// Should not panic
	metrics.RecordToolInvocation(ctx, "list_events", StatusSuccess, 150*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "create_event", StatusError, 50*time.Millisecond)
}

func TestMetrics_UninitializedIsNoOp(t *testing.T) {
	ctx := context.Background()
	metrics := &Metrics{}

	// All recorders must tolerate the zero value.
	metrics.RecordServiceOperation(ctx, ServiceCalendar, "list", StatusSuccess, time.Second)
	metrics.RecordOAuthAuth(ctx, OAuthResultSuccess)
	metrics.RecordToolInvocation(ctx, "list_events", StatusSuccess, time.Second)
}

func TestProviderDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{Enabled: false})
	if err != nil {
		t.Fatalf("failed to create disabled provider: %v", err)
	}

	if provider.Enabled() {
		t.Error("provider should report disabled")
	}
	if provider.Metrics() == nil {
		t.Error("disabled provider should still return a no-op metrics recorder")
	}
	if provider.Tracer("test") == nil {
		t.Error("disabled provider should return a noop tracer")
	}
	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("shutdown of disabled provider returned error: %v", err)
	}
}
