package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewhub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reviewhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewhub_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	roleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewhub_role_transitions_total",
		Help: "User role transitions driven by restaurant creation and removal",
	}, []string{"from", "to"})

	reviewsPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewhub_reviews_posted_total",
		Help: "Reviews created",
	})

	reviewResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewhub_review_responses_total",
		Help: "Owner responses by outcome (posted or edited)",
	}, []string{"outcome"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveLogin counts a login attempt.
func ObserveLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveRoleTransition counts a role change.
func ObserveRoleTransition(from, to string) {
	roleTransitions.WithLabelValues(from, to).Inc()
}

// ObserveReviewPosted counts a new review.
func ObserveReviewPosted() {
	reviewsPosted.Inc()
}

// ObserveReviewResponse counts an owner response.
func ObserveReviewResponse(outcome string) {
	reviewResponses.WithLabelValues(outcome).Inc()
}
