package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	DBQueries        *prometheus.CounterVec
	TimelineDuration prometheus.Histogram
	TimelinePosts    prometheus.Histogram
	TimelineEmpty    prometheus.Counter
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "friendfeed_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "friendfeed_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "friendfeed_db_queries_total",
			Help: "Database statements issued, by kind",
		}, []string{"kind"}),
		TimelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "friendfeed_timeline_assembly_seconds",
			Help:    "Time spent assembling one timeline page",
			Buckets: prometheus.DefBuckets,
		}),
		TimelinePosts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "friendfeed_timeline_page_posts",
			Help:    "Posts returned per timeline page",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		}),
		TimelineEmpty: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "friendfeed_timeline_empty_total",
			Help: "Timeline requests that matched no posts",
		}),
	}
	reg.MustRegister(
		prometheus.NewGoCollector(),
		m.HTTPRequests, m.HTTPDuration, m.DBQueries,
		m.TimelineDuration, m.TimelinePosts, m.TimelineEmpty,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and latency keyed by the route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			m.HTTPRequests.WithLabelValues(c.Request().Method, path, status).Inc()
			m.HTTPDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ObserveTimeline satisfies services.TimelineObserver.
func (m *Metrics) ObserveTimeline(d time.Duration, posts int, empty bool) {
	m.TimelineDuration.Observe(d.Seconds())
	m.TimelinePosts.Observe(float64(posts))
	if empty {
		m.TimelineEmpty.Inc()
	}
}
