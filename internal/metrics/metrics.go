package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Agent metrics
	AgentRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consilium_agent_runs_total",
			Help: "Total number of agent runs",
		},
		[]string{"role", "status"}, // status: success|failed|skipped
	)

	AgentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consilium_agent_duration_seconds",
			Help:    "Agent run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"role"},
	)

	// Orchestration metrics
	AnalysisRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consilium_analysis_runs_total",
			Help: "Total number of orchestrated analysis runs",
		},
		[]string{"status"}, // status: completed|rejected
	)

	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "consilium_analysis_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	// Dialogue metrics
	DialoguePhases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consilium_dialogue_phases_total",
			Help: "Total number of dialogue phase executions",
		},
		[]string{"phase", "status"}, // status: completed|failed
	)

	// LLM metrics
	LLMCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consilium_llm_calls_total",
			Help: "Total number of LLM completion calls",
		},
		[]string{"component", "status"},
	)

	LLMTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consilium_llm_tokens_total",
			Help: "Total tokens consumed by LLM calls",
		},
		[]string{"component", "type"}, // type: input|output
	)

	// Report metrics
	ReportRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consilium_report_renders_total",
			Help: "Total number of report renders",
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(
		AgentRuns,
		AgentDuration,
		AnalysisRuns,
		AnalysisDuration,
		DialoguePhases,
		LLMCalls,
		LLMTokens,
		ReportRenders,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAgentRun records the outcome and duration of one agent run
func ObserveAgentRun(role string, status string, duration time.Duration) {
	AgentRuns.WithLabelValues(role, status).Inc()
	AgentDuration.WithLabelValues(role).Observe(duration.Seconds())
}
