package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub Metrics
var (
	// HubActiveSessions tracks the number of live websocket sessions
	HubActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_active_sessions",
			Help: "Number of live websocket sessions connected to the hub",
		},
	)

	// HubEnvelopesPublishedTotal tracks envelopes published by topic
	HubEnvelopesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_envelopes_published_total",
			Help: "Total envelopes published to the hub by topic",
		},
		[]string{"topic"},
	)

	// HubSlowSessionsEvicted tracks sessions evicted because their send buffer filled
	HubSlowSessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_sessions_evicted_total",
			Help: "Total websocket sessions evicted due to a full send buffer",
		},
	)

	// HubPublishDropsTotal tracks publishes dropped because the command channel was full
	HubPublishDropsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_publish_drops_total",
			Help: "Total publishes dropped because the hub command channel was full",
		},
	)

	// HubEncodeFailuresTotal tracks envelopes that failed to serialize
	HubEncodeFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_encode_failures_total",
			Help: "Total envelopes dropped because serialization failed",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketConnectionsTotal tracks connection attempts by result
	WebSocketConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total WebSocket connection attempts by result (success/error/rejected)",
		},
		[]string{"result"},
	)

	// WebSocketPingFailures tracks WebSocket ping failures
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total WebSocket ping failures (client not responding)",
		},
	)
)

// Subscriber Metrics
var (
	// SubscriberReconnectsTotal tracks reconnect attempts after a dropped connection
	SubscriberReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriber_reconnects_total",
			Help: "Total subscriber reconnect attempts after a dropped connection",
		},
	)

	// SubscriberEnvelopesDroppedTotal tracks envelopes dropped by reason
	SubscriberEnvelopesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriber_envelopes_dropped_total",
			Help: "Total envelopes dropped by the subscriber by reason (malformed/undecodable)",
		},
		[]string{"reason"},
	)

	// SubscriberHandlerPanicsTotal tracks recovered handler panics
	SubscriberHandlerPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriber_handler_panics_total",
			Help: "Total subscriber handler panics recovered by the dispatch loop",
		},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query duration by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)
