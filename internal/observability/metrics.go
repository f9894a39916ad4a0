package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	contactSubmissions  *prometheus.CounterVec
	contactNotifies     *prometheus.CounterVec
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		contactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"outcome"})

		contactNotifies = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_notifications_total",
			Help: "Outbound contact notification attempts by outcome.",
		}, []string{"outcome"})

		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(contactSubmissions, contactNotifies, adminRequestsTotal, adminLatencySeconds)
	})
}

// ContactSubmissions exposes the counter for contact form outcomes.
func ContactSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return contactSubmissions
}

// ContactNotifications exposes the counter for notification delivery outcomes.
func ContactNotifications() *prometheus.CounterVec {
	RegisterMetrics()
	return contactNotifies
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}
