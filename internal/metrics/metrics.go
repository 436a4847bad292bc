package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	RelayEvents       *prometheus.CounterVec
	RelayBroadcasts   *prometheus.CounterVec
	MessagesPersisted prometheus.Counter
	StatsCacheLookups *prometheus.CounterVec
	Errors            *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton. The namespace is
// baked in on the first call; later calls return the same instance and their
// argument is ignored.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			RelayEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relay_events_total",
				Help:      "Total inbound realtime events by type.",
			}, []string{"event"}),
			RelayBroadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relay_broadcasts_total",
				Help:      "Total payloads fanned out to room members by event type.",
			}, []string{"event"}),
			MessagesPersisted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_persisted_total",
				Help:      "Total chat messages written to the database.",
			}),
			StatsCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stats_cache_lookups_total",
				Help:      "Profile stats cache lookups by result.",
			}, []string{"result"}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.RelayEvents,
			metricsInstance.RelayBroadcasts,
			metricsInstance.MessagesPersisted,
			metricsInstance.StatsCacheLookups,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
