package handshake

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for handshake operations.
var (
	HandshakesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsna",
			Name:      "handshakes_started_total",
			Help:      "Total number of 4-Way Handshakes started",
		},
		[]string{"ifindex"},
	)

	HandshakesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsna",
			Name:      "handshakes_completed_total",
			Help:      "Total number of handshakes that reached the done state",
		},
		[]string{"ifindex"},
	)

	HandshakesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsna",
			Name:      "handshakes_failed_total",
			Help:      "Total number of handshakes that transitioned to failed",
		},
		[]string{"ifindex", "reason"},
	)

	ReplayDrops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsna",
			Name:      "replay_drops_total",
			Help:      "Total number of inbound frames dropped for a non-increasing replay counter",
		},
		[]string{"ifindex"},
	)

	MICFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsna",
			Name:      "mic_failures_total",
			Help:      "Total number of inbound frames dropped for MIC verification failure",
		},
		[]string{"ifindex"},
	)

	HandshakeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rsna",
			Name:      "handshake_duration_seconds",
			Help:      "Wall-clock time from message 1/4 to the handshake reaching done",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"ifindex"},
	)

	// Ensure metrics are only registered once.
	once sync.Once
)

// InitMetrics registers all handshake metrics with the global Prometheus
// registry. Idempotent and safe to call multiple times.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(HandshakesStarted)
		prometheus.DefaultRegisterer.Register(HandshakesCompleted)
		prometheus.DefaultRegisterer.Register(HandshakesFailed)
		prometheus.DefaultRegisterer.Register(ReplayDrops)
		prometheus.DefaultRegisterer.Register(MICFailures)
		prometheus.DefaultRegisterer.Register(HandshakeDuration)
	})
}
