// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package api

import "github.com/prometheus/client_golang/prometheus"

// Metrics contains the client's Prometheus counters.
type Metrics struct {
	// Requests counts completed requests by path and status. Transport
	// failures are counted under the status "transport_error".
	Requests *prometheus.CounterVec

	// RateLimits counts HTTP 429 responses.
	RateLimits prometheus.Counter
}

// NewMetrics creates and registers the client metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venmogo_requests_total",
				Help: "Total number of API requests by path and status",
			},
			[]string{"path", "status"},
		),
		RateLimits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "venmogo_rate_limited_total",
				Help: "Total number of rate-limited API responses",
			},
		),
	}

	reg.MustRegister(m.Requests)
	reg.MustRegister(m.RateLimits)

	return m
}
