package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName = "lifedash"
	meterName   = "github.com/manav03panchal/lifedash/internal/telemetry"
)

// Config controls the OTLP exporter.
type Config struct {
	// Endpoint is the collector's gRPC address, e.g. localhost:4317.
	Endpoint string
	Insecure bool

	// Version is reported as service.version.
	Version string

	// Interval is how often metrics are pushed. Zero uses the SDK default.
	Interval time.Duration
}

// Exporter records backend calls as OpenTelemetry metrics. It implements
// api.Recorder.
type Exporter struct {
	provider    *sdkmetric.MeterProvider
	callsTotal  metric.Int64Counter
	callLatency metric.Float64Histogram
}

// NewExporter connects to the collector at cfg.Endpoint.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("telemetry endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts,
			otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
			otlpmetricgrpc.WithInsecure(),
		)
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	return newExporter(sdkmetric.NewPeriodicReader(exp, readerOpts...), cfg.Version)
}

// newExporter builds the instruments on top of reader.
func newExporter(reader sdkmetric.Reader, version string) (*Exporter, error) {
	attrs := []attribute.KeyValue{attribute.String("service.name", serviceName)}
	if version != "" {
		attrs = append(attrs, attribute.String("service.version", version))
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(resource.NewSchemaless(attrs...)),
	)
	meter := provider.Meter(meterName)

	callsTotal, err := meter.Int64Counter(
		"lifedash_backend_calls_total",
		metric.WithDescription("Backend calls by operation and outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calls counter: %w", err)
	}

	callLatency, err := meter.Float64Histogram(
		"lifedash_backend_call_duration_seconds",
		metric.WithDescription("Backend call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating latency histogram: %w", err)
	}

	return &Exporter{
		provider:    provider,
		callsTotal:  callsTotal,
		callLatency: callLatency,
	}, nil
}

// ObserveCall records one completed backend call.
func (e *Exporter) ObserveCall(op string, status int, failure string, d time.Duration) {
	if failure == "" {
		failure = "none"
	}
	opt := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("failure", failure),
		attribute.Int("http.status_code", status),
	)

	ctx := context.Background()
	e.callsTotal.Add(ctx, 1, opt)
	e.callLatency.Record(ctx, d.Seconds(), opt)
}

// Close flushes pending metrics and shuts the provider down.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
