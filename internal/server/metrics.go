package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "desktop_bridge",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of bridge requests by route and status",
		},
		[]string{"route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "desktop_bridge",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Bridge request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	policyDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "desktop_bridge",
			Subsystem: "shell",
			Name:      "policy_decisions_total",
			Help:      "Shell command classifications by verdict",
		},
		[]string{"verdict"},
	)

	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "desktop_bridge",
			Subsystem: "autopilot",
			Name:      "actions_total",
			Help:      "Input actions performed by type and outcome",
		},
		[]string{"action", "outcome"},
	)
)
