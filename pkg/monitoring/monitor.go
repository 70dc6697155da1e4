package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	AssessmentRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillpath_assessment_runs_total",
			Help: "Completed assessments by readiness",
		},
		[]string{"readiness"},
	)

	ResumeScans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillpath_resume_scans_total",
			Help: "Resume scans by outcome",
		},
		[]string{"status"},
	)

	MarketCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillpath_market_cache_lookups_total",
			Help: "Market analysis cache lookups by result",
		},
		[]string{"result"},
	)

	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillpath_ai_requests_total",
			Help: "Chat assistant requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	SimulatedWait = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillpath_simulated_wait_seconds",
			Help:    "Time spent in simulated upstream waits",
			Buckets: []float64{0.5, 1, 2, 3, 4, 6},
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. It is safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AssessmentRuns,
			ResumeScans,
			MarketCacheLookups,
			AIRequests,
			SimulatedWait,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
