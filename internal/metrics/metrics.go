package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks HTTP requests by method, route, and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingoqr_http_requests_total",
		Help: "Total HTTP requests by method, path, and status code",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks HTTP request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lingoqr_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// TranslationRequestsTotal counts successful provider translations.
	TranslationRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingoqr_translation_requests_total",
		Help: "Total successful translation provider calls",
	})

	// TranslationErrorsTotal counts provider failures by type (config, auth, api).
	TranslationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingoqr_translation_errors_total",
		Help: "Total translation provider failures by type",
	}, []string{"type"})

	// TranslationAPILatency tracks provider round-trip latency.
	TranslationAPILatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lingoqr_translation_api_latency_seconds",
		Help:    "Translation API request latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	// TranslationsStoredTotal counts records written to the store.
	TranslationsStoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingoqr_translations_stored_total",
		Help: "Total translation records created",
	})

	// TranslationsExpiredTotal counts records deleted because they aged out.
	TranslationsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingoqr_translations_expired_total",
		Help: "Total translation records removed after expiry",
	})

	// QRCodesGeneratedTotal counts QR images rendered.
	QRCodesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingoqr_qr_codes_generated_total",
		Help: "Total QR code images generated",
	})

	// ResolveOutcomes counts resolver results: fresh, expired, or not_found.
	ResolveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingoqr_resolve_outcomes_total",
		Help: "Resolver outcomes by result (fresh, expired, not_found)",
	}, []string{"outcome"})

	// StoredTranslations gauges the current size of the record store.
	StoredTranslations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lingoqr_stored_translations",
		Help: "Number of translation records currently stored",
	})
)
