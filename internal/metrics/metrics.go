// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_events_total",
		Help: "User input events processed, by intent.",
	}, []string{"intent"})

	RoutesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_routes_total",
		Help: "Routing outcomes, by next-step category.",
	}, []string{"category"})

	EscalationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_safety_escalations_total",
		Help: "Events that triggered a safety escalation.",
	})

	FollowUpsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_follow_up_questions_total",
		Help: "Clarifying questions asked.",
	})

	PersistenceWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_persistence_warnings_total",
		Help: "Non-fatal store read/write failures.",
	})
)
