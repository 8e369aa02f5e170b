package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("shell")
	if cfg.ServiceName != "shell" {
		t.Errorf("expected service 'shell', got %q", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if !cfg.Insecure {
		t.Error("expected insecure default for development")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("shell")
	if cfg.ServiceName != "shell" {
		t.Errorf("expected service 'shell', got %q", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	mp := sdkmetric.NewMeterProvider()
	defer mp.Shutdown(context.Background())

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordTokenEvent(ctx, "token")
	m.RecordTokenEvent(ctx, "absent")
	m.RecordTokenEvent(ctx, "error")
	m.RecordSignOut(ctx, "ok")
	m.RecordSignOut(ctx, "error")
	m.RecordPublish(ctx, 5)
	m.ClientConnected(ctx)
	m.ClientDisconnected(ctx)
	m.RecordRequest(ctx, "GET", "/readyz", "200", 5*time.Millisecond)
}

func TestTracer(t *testing.T) {
	tr := Tracer("test")
	if tr == nil {
		t.Fatal("expected non-nil tracer")
	}
}

func TestMeter(t *testing.T) {
	m := Meter("test")
	if m == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestStartSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := StartSpan(context.Background(), SpanBridgePublish)
	if span == nil {
		t.Fatal("expected non-nil span")
	}
	span.End()

	if SpanFromContext(ctx) == nil {
		t.Error("expected span retrievable from context")
	}
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	// Must not panic without a recording span in context.
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanAttribute(context.Background(), "count", 3)
	SetSpanAttribute(context.Background(), "flag", true)
}

func TestSetSpanErrorNoSpan(t *testing.T) {
	SetSpanError(context.Background(), errors.New("boom"))
}

func TestNewResourceMergesWithSDKDefault(t *testing.T) {
	// The service attributes must share a schema with the SDK's default
	// resource, otherwise Merge rejects the combination.
	res, err := newResource("shell-test", "1.0.0", "test")
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	if res == nil {
		t.Fatal("expected non-nil resource")
	}
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultTracerConfig("shell-test")
	tp, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if tp == nil {
		t.Fatal("expected non-nil tracer provider")
	}
}

func TestInitTracerSamplingRates(t *testing.T) {
	for _, rate := range []float64{0, 0.5, 1.0} {
		cfg := DefaultTracerConfig("shell-test")
		cfg.SampleRate = rate
		tp, err := InitTracer(context.Background(), cfg)
		if err != nil {
			t.Fatalf("InitTracer(rate=%f): %v", rate, err)
		}
		if tp == nil {
			t.Fatalf("expected provider for rate %f", rate)
		}
	}
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("shell-test")
	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	if mp == nil {
		t.Fatal("expected non-nil meter provider")
	}
}
