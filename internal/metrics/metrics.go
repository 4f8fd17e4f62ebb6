// Package metrics registers the console's prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder observes calls to the upstream admin API
type Recorder interface {
	ObserveUpstream(method, route string, status int, elapsed time.Duration)
}

// Metrics holds the console collectors
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	Swept            *prometheus.CounterVec
	StaleResponses   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marketadmin",
				Name:      "upstream_requests_total",
				Help:      "Requests sent to the admin API, by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		UpstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "marketadmin",
				Name:      "upstream_request_duration_seconds",
				Help:      "Latency of admin API requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Swept: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marketadmin",
				Name:      "swept_total",
				Help:      "Entries removed by the sweeper, by kind (session or view_state).",
			},
			[]string{"kind"},
		),
		StaleResponses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marketadmin",
				Name:      "stale_responses_total",
				Help:      "Fetch results discarded because a newer fetch of the same view had already landed.",
			},
			[]string{"view"},
		),
	}

	reg.MustRegister(m.UpstreamRequests, m.UpstreamLatency, m.Swept, m.StaleResponses)
	return m
}

// ObserveUpstream records one admin API call. Status 0 means a transport failure.
func (m *Metrics) ObserveUpstream(method, route string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.UpstreamRequests.WithLabelValues(method, route, code).Inc()
	m.UpstreamLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveStale records a fetch result discarded in favour of a newer one
func (m *Metrics) ObserveStale(view string) {
	m.StaleResponses.WithLabelValues(view).Inc()
}

// ObserveSwept records expired sessions and orphaned view snapshots removed by the sweeper
func (m *Metrics) ObserveSwept(sessions, viewStates int) {
	m.Swept.WithLabelValues("session").Add(float64(sessions))
	m.Swept.WithLabelValues("view_state").Add(float64(viewStates))
}

// Nop discards observations
type Nop struct{}

// ObserveUpstream implements Recorder
func (Nop) ObserveUpstream(string, string, int, time.Duration) {}

// ObserveStale implements viewstate.StaleObserver
func (Nop) ObserveStale(string) {}

// ObserveSwept discards the counts
func (Nop) ObserveSwept(int, int) {}
