package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dossier_provider_searches_total",
			Help: "Search provider calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dossier_llm_requests_total",
			Help: "Generative model calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dossier_step_duration_seconds",
			Help: "Pipeline step duration in seconds",
		},
		[]string{"step"},
	)

	StepRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dossier_step_retries_total",
			Help: "Pipeline step retry attempts",
		},
		[]string{"step"},
	)

	ResearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dossier_research_requests_total",
			Help: "Research pipeline invocations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)
