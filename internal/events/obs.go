package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_events_published_total",
		Help: "Events successfully handed off to the broker, per topic.",
	}, []string{"topic"})

	publishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_events_publish_failures_total",
		Help: "Events that failed to reach the broker, per topic.",
	}, []string{"topic"})
)
