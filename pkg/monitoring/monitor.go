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
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	CheckInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_checkins_total",
			Help: "Self-assessment check-ins saved, by status label",
		},
		[]string{"label"},
	)

	JournalEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_journal_entries_total",
			Help: "Journal entry save attempts, by outcome",
		},
		[]string{"outcome"},
	)

	CoinsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_coins_awarded_total",
			Help: "Coins credited to user ledgers, by reason",
		},
		[]string{"reason"},
	)

	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_ai_requests_total",
			Help: "Calls to the text generation service, by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(CheckInsTotal)
		prometheus.MustRegister(JournalEntriesTotal)
		prometheus.MustRegister(CoinsAwarded)
		prometheus.MustRegister(AIRequests)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
