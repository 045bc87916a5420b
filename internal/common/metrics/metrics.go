// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FillRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formfill_requests_total",
			Help: "Total number of fill requests by HTTP status",
		},
		[]string{"status"},
	)

	FillRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formfill_requests_failed_total",
			Help: "Total number of failed fill requests by error code",
		},
		[]string{"error_code"},
	)

	TranslationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formfill_translation_calls_total",
			Help: "Translator results by outcome",
		},
		[]string{"outcome"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "formfill_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	RequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "formfill_requests_active",
			Help: "Number of fill requests in flight",
		},
	)
)
