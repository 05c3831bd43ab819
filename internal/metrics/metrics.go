package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_http_requests_total",
		Help: "Number of HTTP requests grouped by method, path and status.",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_http_request_duration_seconds",
		Help:    "HTTP request latency grouped by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	postViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_post_views_total",
		Help: "Number of view-counter increments on published posts.",
	})

	postsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_posts_created_total",
		Help: "Number of created posts grouped by status.",
	}, []string{"status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})
)

// IncPostView increments the view counter metric.
func IncPostView() {
	postViews.Inc()
}

// IncPostCreated increments the created-posts counter.
func IncPostCreated(status string) {
	postsCreated.WithLabelValues(status).Inc()
}

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
