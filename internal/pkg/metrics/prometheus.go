package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simtrendi_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simtrendi_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Leave workflow metrics
	leaveApprovalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simtrendi_leave_approvals_total",
			Help: "Leave approval attempts by tier and outcome",
		},
		[]string{"tier", "outcome"},
	)

	leaveSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "simtrendi_leave_submissions_total",
			Help: "Leave requests submitted",
		},
	)

	leaveExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "simtrendi_leave_expired_total",
			Help: "Pending leave requests removed by the expiry sweep",
		},
	)

	notificationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simtrendi_notification_failures_total",
			Help: "Notifications that could not be delivered to the sink",
		},
		[]string{"category"},
	)

	notificationQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "simtrendi_notification_queue_depth",
			Help: "Notifications waiting in the in-memory queue",
		},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, route string, statusCode int, durationSeconds float64) {
	status := "unknown"
	if statusCode >= 200 && statusCode < 300 {
		status = "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		status = "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		status = "4xx"
	} else if statusCode >= 500 {
		status = "5xx"
	}

	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordApproval records one approval attempt. tier is empty when the
// attempt failed before the approver was classified.
func RecordApproval(tier, outcome string) {
	if tier == "" {
		tier = "unknown"
	}
	leaveApprovalsTotal.WithLabelValues(tier, outcome).Inc()
}

func RecordSubmission() {
	leaveSubmissionsTotal.Inc()
}

func RecordExpired(n int64) {
	leaveExpiredTotal.Add(float64(n))
}

func RecordNotificationFailure(category string) {
	notificationFailuresTotal.WithLabelValues(category).Inc()
}

func SetNotificationQueueDepth(n int) {
	notificationQueueDepth.Set(float64(n))
}

// Middleware records request counts and latency labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordHTTPRequest(r.Method, route, status, time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
