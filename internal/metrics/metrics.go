// Package metrics exposes Prometheus counters for the fulfillment webhook.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Labels stay low-cardinality: no session ids, no free text.
var (
	// IntentsTotal counts dispatched webhook calls by handler.
	IntentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_intents_total",
		Help: "Total number of webhook calls, by handler.",
	}, []string{"intent"})

	// FallbackTotal counts generative fallback outcomes.
	FallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_fallback_total",
		Help: "Total number of fallback completions, by outcome (answered/timeout/error).",
	}, []string{"outcome"})

	// TasksTotal counts background task attempts and their results.
	TasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_tasks_total",
		Help: "Total number of background task events, by kind and outcome (ok/retry/failed/rejected).",
	}, []string{"kind", "outcome"})
)
