// Package metrics defines the Prometheus instrumentation for the monitor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommentsProcessed counts comments pulled from the stream and scored.
	CommentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardline_comments_processed_total",
			Help: "Total comments scored, by subreddit",
		},
		[]string{"subreddit"},
	)

	// CommentsFlagged counts comments whose label matched the flag sentiment.
	CommentsFlagged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardline_comments_flagged_total",
			Help: "Total comments flagged, by subreddit and label",
		},
		[]string{"subreddit", "label"},
	)

	// CommentsSkipped counts comments dropped before scoring (no author).
	CommentsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardline_comments_skipped_total",
			Help: "Total comments skipped before scoring",
		},
	)

	// AnalyzeDuration tracks keyword scoring latency in seconds.
	AnalyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "guardline_analyze_duration_seconds",
			Help:    "Keyword analysis duration in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		},
	)

	// RedditPolls counts listing fetches against the Reddit API by status.
	RedditPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardline_reddit_polls_total",
			Help: "Total Reddit listing fetches by status",
		},
		[]string{"status"},
	)

	// CircuitBreakerStateChanges tracks breaker transitions for the Reddit client.
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardline_circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState exposes the current breaker state (0 closed, 1 half-open, 2 open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "guardline_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
