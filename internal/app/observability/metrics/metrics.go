package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	UpstreamRequestsTotal   metric.Int64Counter
	UpstreamRequestDuration metric.Float64Histogram
	AuthAttemptsTotal       metric.Int64Counter
	PageRenderDuration      metric.Float64Histogram
	ImageCacheHitsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, reading the
// meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("daybook-web")
		var err error
		m := &AppMetrics{}

		m.UpstreamRequestsTotal, err = meter.Int64Counter(
			"upstream_requests_total",
			metric.WithDescription("Total number of requests sent to the diary backend"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_requests_total: %v", err)
		}

		m.UpstreamRequestDuration, err = meter.Float64Histogram(
			"upstream_request_duration_seconds",
			metric.WithDescription("Duration of requests to the diary backend in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_request_duration_seconds: %v", err)
		}

		m.AuthAttemptsTotal, err = meter.Int64Counter(
			"auth_attempts_total",
			metric.WithDescription("Total number of login and registration attempts"),
			metric.WithUnit("{attempt}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_attempts_total: %v", err)
		}

		m.PageRenderDuration, err = meter.Float64Histogram(
			"page_render_duration_seconds",
			metric.WithDescription("Duration of page template rendering in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create page_render_duration_seconds: %v", err)
		}

		m.ImageCacheHitsTotal, err = meter.Int64Counter(
			"image_cache_hits_total",
			metric.WithDescription("Entry image proxy cache hits and misses"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create image_cache_hits_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global instruments, or nil before InitAppMetrics ran.
func Get() *AppMetrics {
	return appMetrics
}

// RecordUpstreamRequest counts and times one backend call. Safe to call when
// metrics were never initialized (tests).
func RecordUpstreamRequest(ctx context.Context, method string, status int, elapsed time.Duration) {
	m := Get()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("status", status),
	)
	m.UpstreamRequestsTotal.Add(ctx, 1, attrs)
	m.UpstreamRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordAuthAttempt counts one login/registration attempt by outcome.
func RecordAuthAttempt(ctx context.Context, kind string, success bool) {
	m := Get()
	if m == nil {
		return
	}
	m.AuthAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("success", success),
	))
}

// RecordPageRender times one rendered page.
func RecordPageRender(ctx context.Context, page string, elapsed time.Duration) {
	m := Get()
	if m == nil {
		return
	}
	m.PageRenderDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("page", page),
	))
}

// RecordImageCacheLookup counts one image proxy cache lookup.
func RecordImageCacheLookup(ctx context.Context, hit bool) {
	m := Get()
	if m == nil {
		return
	}
	m.ImageCacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}
