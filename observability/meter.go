package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/shellkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the shell's metric instruments.
type Metrics struct {
	tokenEvents     metric.Int64Counter
	signOuts        metric.Int64Counter
	publishes       metric.Int64Counter
	feedClients     metric.Int64UpDownCounter
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	tokenEvents, err := meter.Int64Counter("session.token_events",
		metric.WithDescription("Token events observed from the identity provider, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session.token_events counter: %w", err)
	}

	signOuts, err := meter.Int64Counter("session.sign_outs",
		metric.WithDescription("Sign-out attempts, by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session.sign_outs counter: %w", err)
	}

	publishes, err := meter.Int64Counter("bridge.publishes",
		metric.WithDescription("Registry publishes, with the published service count"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bridge.publishes counter: %w", err)
	}

	feedClients, err := meter.Int64UpDownCounter("feed.clients",
		metric.WithDescription("Connected presence-feed clients"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating feed.clients gauge: %w", err)
	}

	requestTotal, err := meter.Int64Counter("request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("request.duration",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request.duration histogram: %w", err)
	}

	return &Metrics{
		tokenEvents:     tokenEvents,
		signOuts:        signOuts,
		publishes:       publishes,
		feedClients:     feedClients,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}, nil
}

// RecordTokenEvent records one observed token event. Outcome is "token",
// "absent" or "error".
func (m *Metrics) RecordTokenEvent(ctx context.Context, outcome string) {
	m.tokenEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordSignOut records one sign-out attempt with its status.
func (m *Metrics) RecordSignOut(ctx context.Context, status string) {
	m.signOuts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordPublish records one registry publish and the number of services
// it installed.
func (m *Metrics) RecordPublish(ctx context.Context, services int) {
	m.publishes.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("services", services),
	))
}

// ClientConnected increments the presence-feed client gauge.
func (m *Metrics) ClientConnected(ctx context.Context) {
	m.feedClients.Add(ctx, 1)
}

// ClientDisconnected decrements the presence-feed client gauge.
func (m *Metrics) ClientDisconnected(ctx context.Context) {
	m.feedClients.Add(ctx, -1)
}

// RecordRequest records one completed HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, path, status string, duration time.Duration) {
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	))
}
