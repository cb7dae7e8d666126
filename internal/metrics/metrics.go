// Package metrics provides Prometheus instrumentation for the MantleMusicFi
// scoring service.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "musicfi",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "musicfi",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AssessmentsTotal counts scoring-engine evaluations by model and outcome.
	// Models: credit, risk, revenue, stress_test. Outcomes: ok, invalid, error.
	AssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "musicfi",
			Name:      "assessments_total",
			Help:      "Total scoring assessments by model and outcome.",
		},
		[]string{"model", "outcome"},
	)

	// AssessmentDuration observes engine evaluation latency by model.
	AssessmentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "musicfi",
			Name:      "assessment_duration_seconds",
			Help:      "Scoring assessment duration in seconds.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"model"},
	)

	// BatchSize observes batch request sizes by model.
	BatchSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "musicfi",
			Name:      "batch_size",
			Help:      "Number of items per batch scoring request.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100},
		},
		[]string{"model"},
	)

	// CreditScoreDistribution observes the credit scores the engine produces.
	CreditScoreDistribution = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "musicfi",
		Name:      "credit_score",
		Help:      "Distribution of computed credit scores.",
		Buckets:   []float64{300, 400, 450, 500, 550, 600, 650, 700, 750, 800, 850},
	})

	// RiskScoreDistribution observes the overall risk scores the engine produces.
	RiskScoreDistribution = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "musicfi",
		Name:      "risk_score",
		Help:      "Distribution of computed overall risk scores.",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95},
	})

	// ActiveWebSocketClients tracks connected WebSocket clients.
	ActiveWebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "musicfi",
			Name:      "active_websocket_clients",
			Help:      "Number of currently connected WebSocket clients.",
		},
	)

	// GoroutineCount tracks the current number of goroutines.
	GoroutineCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "musicfi", Name: "goroutines",
		Help: "Current number of goroutines.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AssessmentsTotal,
		AssessmentDuration,
		BatchSize,
		CreditScoreDistribution,
		RiskScoreDistribution,
		ActiveWebSocketClients,
		GoroutineCount,
	)
}

// ObserveAssessment records one engine evaluation.
func ObserveAssessment(model, outcome string, d time.Duration) {
	AssessmentsTotal.WithLabelValues(model, outcome).Inc()
	AssessmentDuration.WithLabelValues(model).Observe(d.Seconds())
}

// StartRuntimeCollector periodically samples runtime stats into Prometheus
// gauges. Call in a goroutine; exits when ctx is done.
func StartRuntimeCollector(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			GoroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}
}

// Middleware returns a gin middleware that records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(), // Uses route pattern, not actual path (avoids cardinality explosion)
		))

		c.Next()

		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// statusBucket groups HTTP status codes into buckets (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
