package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geoquiz",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10, 60},
	}, []string{"method", "path"})

	// Pipeline metrics
	RecordsRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "pipeline",
		Name:      "records_read_total",
		Help:      "Raw map records read from suppliers",
	}, []string{"provider"})

	RecordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "pipeline",
		Name:      "records_dropped_total",
		Help:      "Raw map records dropped by the builder",
	}, []string{"reason"})

	EntitiesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "pipeline",
		Name:      "entities_built_total",
		Help:      "Geo entities stored after dedup",
	})

	EntitiesMerged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "pipeline",
		Name:      "entities_merged_total",
		Help:      "Merges performed by the dedup engine",
	})

	BuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geoquiz",
		Subsystem: "pipeline",
		Name:      "build_duration_seconds",
		Help:      "Duration of exercise construction",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"result"})

	// Quiz metrics
	QuizzesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "quiz",
		Name:      "started_total",
		Help:      "Running quizzes created",
	}, []string{"type"})

	AnswersReported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "quiz",
		Name:      "answers_total",
		Help:      "Answers reported",
	}, []string{"correct"})

	QuizzesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "quiz",
		Name:      "finished_total",
		Help:      "Finished quizzes by type and outcome",
	}, []string{"type", "outcome"})

	// Cache metrics
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoquiz",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "geoquiz",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "geoquiz",
		Subsystem: "db",
		Name:      "pool_conns_in_use",
		Help:      "Connections currently in use",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "geoquiz",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics копирует статистику пула database/sql
func UpdateDBPoolMetrics(stats sql.DBStats) {
	DBPoolConnsOpen.Set(float64(stats.OpenConnections))
	DBPoolConnsInUse.Set(float64(stats.InUse))
	DBPoolConnsIdle.Set(float64(stats.Idle))
}

// ObserveBuild записывает длительность построения
func ObserveBuild(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BuildDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

// Outcome - метка результата викторины
func Outcome(passed bool) string {
	if passed {
		return "passed"
	}
	return "not_passed"
}
