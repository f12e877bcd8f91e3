package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 分析结果标签
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeProvider   = "provider_error"
	OutcomeMalformed  = "malformed_response"
	OutcomeUnknown    = "unknown_error"
)

// ProviderUnknown 无法识别的服务商使用的固定标签
const ProviderUnknown = "unknown"

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandspark_analyses_total",
			Help: "Total number of domain analyses by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brandspark_analysis_duration_seconds",
			Help:    "Duration of provider calls in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)

	AnalysesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brandspark_analyses_active",
			Help: "Number of provider calls in flight",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brandspark_sessions_active",
			Help: "Number of live browser sessions",
		},
	)
)
