package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysisStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ats_analysis_started_total",
		Help: "Total analyses started",
	})
	analysisCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ats_analysis_completed_total",
		Help: "Total analyses completed",
	})
	analysisFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ats_analysis_failed_total",
		Help: "Total analyses failed, by error kind",
	}, []string{"kind"})
	parseDegradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ats_analysis_parse_degraded_total",
		Help: "Model replies that needed defaulted fields",
	})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ats_analysis_duration_seconds",
		Help:    "End-to-end analysis duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})
	modelDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ats_model_invocation_duration_seconds",
		Help:    "Model invocation duration in seconds",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"provider"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ats_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status_code"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ats_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Inc()
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Inc()
}

// IncAnalysisFailed increments the failed counter for the given error kind.
func IncAnalysisFailed(kind string) {
	analysisFailedTotal.WithLabelValues(kind).Inc()
}

// IncParseDegraded counts a model reply that was normalized with defaults.
func IncParseDegraded() {
	parseDegradedTotal.Inc()
}

// ObserveAnalysisDuration records an end-to-end analysis duration.
func ObserveAnalysisDuration(d time.Duration) {
	analysisDuration.Observe(clamp(d).Seconds())
}

// ObserveModelDuration records a single model call.
func ObserveModelDuration(provider string, d time.Duration) {
	modelDuration.WithLabelValues(provider).Observe(clamp(d).Seconds())
}

// HTTP records request counts and latency per route.
func HTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
