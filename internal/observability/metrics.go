// Package observability registers the prometheus instruments for the service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsTracked = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metricaclick",
		Subsystem: "tracking",
		Name:      "sessions_total",
		Help:      "Sessions registered, by device type.",
	}, []string{"device_type"})

	conversionsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metricaclick",
		Subsystem: "attribution",
		Name:      "conversions_total",
		Help:      "Conversions recorded, by how the session was matched.",
	}, []string{"match"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metricaclick",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status class.",
	}, []string{"route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "metricaclick",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(sessionsTracked, conversionsRecorded, httpRequests, httpDuration)
}

// SessionTracked counts one registered session.
func SessionTracked(deviceType string) {
	sessionsTracked.WithLabelValues(deviceType).Inc()
}

// MatchKind labels how a conversion got (or failed to get) its session.
type MatchKind string

const (
	MatchExplicit MatchKind = "explicit"
	MatchUTM      MatchKind = "utm"
	MatchNone     MatchKind = "none"
)

// ConversionRecorded counts one stored conversion.
func ConversionRecorded(kind MatchKind) {
	conversionsRecorded.WithLabelValues(string(kind)).Inc()
}

// HTTPServed records one finished request.
func HTTPServed(route, statusClass string, seconds float64) {
	httpRequests.WithLabelValues(route, statusClass).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}
