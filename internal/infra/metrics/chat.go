package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		chatTurnsTotal,
		chatTurnLatencyMs,
		crisisEscalations,
		historyAppendFailures,
		rateLimitedRequests,
		usersTotal,
	)
}

var (
	chatTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Processed chat turns per resolved topic and intent.",
		},
		[]string{"topic", "intent"},
	)

	chatTurnLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_turn_latency_ms",
			Help:    "End-to-end turn processing latency in milliseconds.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200, 400, 800},
		},
	)

	crisisEscalations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_crisis_escalations_total",
			Help: "Turns that ended in the crisis response.",
		},
	)

	historyAppendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "history_append_failures_total",
			Help: "Chat turn records that could not be persisted.",
		},
	)

	rateLimitedRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rate_limited_total",
			Help: "Chat requests rejected by the per-user rate limit.",
		},
	)

	usersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_total",
			Help: "Registered users.",
		},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func ObserveTurn(topic, intent string, latencyMs float64) {
	chatTurnsTotal.WithLabelValues(norm(topic), norm(intent)).Inc()
	chatTurnLatencyMs.Observe(latencyMs)
}

func IncCrisisEscalation() { crisisEscalations.Inc() }

func IncHistoryAppendFailure() { historyAppendFailures.Inc() }

func IncRateLimited() { rateLimitedRequests.Inc() }

func SetUsersTotal(n int) { usersTotal.Set(float64(n)) }
