package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const ServiceName = "rep-messaging"

// Setup installs a global MeterProvider exporting over OTLP/HTTP when
// collectorURL is set. Without a collector the global no-op provider stays
// in place and instruments are free. The returned func flushes and stops
// the exporter.
func Setup(ctx context.Context, collectorURL string, logger *slog.Logger) (func(context.Context) error, error) {
	if collectorURL == "" {
		logger.Info("metrics exporter disabled", "reason", "OTEL_COLLECTOR_URL not set")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(collectorURL),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(30*time.Second))),
	)
	otel.SetMeterProvider(mp)
	logger.Info("metrics exporter enabled", "collector", collectorURL)

	return mp.Shutdown, nil
}
