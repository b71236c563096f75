// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "societyledger"

var (
	// RPCRequests counts finished RPCs by procedure and Connect code.
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Completed RPCs by procedure and result code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency by procedure.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// SnapshotDeliveries counts live snapshots handed to subscribers.
	SnapshotDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_snapshots_delivered_total",
		Help:      "Snapshots delivered to live subscribers by collection.",
	}, []string{"collection"})

	// SnapshotsReplaced counts undelivered snapshots dropped for a newer one.
	SnapshotsReplaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_snapshots_replaced_total",
		Help:      "Stale snapshots replaced before a slow subscriber read them.",
	}, []string{"collection"})

	// ActiveSubscriptions tracks open live subscriptions.
	ActiveSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_subscriptions",
		Help:      "Open live subscriptions.",
	})

	// OpeningBalanceDuration observes opening balance computations.
	OpeningBalanceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "opening_balance_seconds",
		Help:      "Time spent computing a sheet's opening balance.",
		Buckets:   prometheus.DefBuckets,
	})

	// BrokerPublishes counts change events sent to the message broker.
	BrokerPublishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broker_publishes_total",
		Help:      "Change events published to the broker by result.",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
