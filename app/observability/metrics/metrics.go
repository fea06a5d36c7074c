package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	StoreMutationsTotal     metric.Int64Counter
	StorePersistErrorsTotal metric.Int64Counter
	ContentRequestsTotal    metric.Int64Counter
	ContentFallbacksTotal   metric.Int64Counter
	ContentDurationSeconds  metric.Float64Histogram
	ContentCacheHitsTotal   metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the instruments once, from the global
// MeterProvider. Call it after the provider is installed so the exporter
// sees the instruments.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("IndiaTravelGuide")
		var err error
		m := &AppMetrics{}

		m.StoreMutationsTotal, err = meter.Int64Counter(
			"store_mutations_total",
			metric.WithDescription("Total number of state store mutations"),
			metric.WithUnit("{mutation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create store_mutations_total: %v", err)
		}

		m.StorePersistErrorsTotal, err = meter.Int64Counter(
			"store_persist_errors_total",
			metric.WithDescription("Total number of failed durable storage writes"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create store_persist_errors_total: %v", err)
		}

		m.ContentRequestsTotal, err = meter.Int64Counter(
			"content_requests_total",
			metric.WithDescription("Total number of generated content requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create content_requests_total: %v", err)
		}

		m.ContentFallbacksTotal, err = meter.Int64Counter(
			"content_fallbacks_total",
			metric.WithDescription("Total number of content requests answered with a fallback value"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create content_fallbacks_total: %v", err)
		}

		m.ContentDurationSeconds, err = meter.Float64Histogram(
			"content_duration_seconds",
			metric.WithDescription("Duration of generative content calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create content_duration_seconds: %v", err)
		}

		m.ContentCacheHitsTotal, err = meter.Int64Counter(
			"content_cache_hits_total",
			metric.WithDescription("Total number of content requests served from cache"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create content_cache_hits_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the instruments, initializing them against the current global
// provider on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
