// Package metrics exposes Prometheus instruments for draws, groupings and
// participant intake.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrevent"

// Metrics holds every instrument the server records.
type Metrics struct {
	registry *prometheus.Registry

	SessionsActive    prometheus.Gauge
	ParticipantsAdded *prometheus.CounterVec
	DrawsStarted      prometheus.Counter
	DrawsCommitted    prometheus.Counter
	DrawsRejected     *prometheus.CounterVec
	GroupingsTotal    prometheus.Counter
	GroupSize         prometheus.Histogram
	ExportsTotal      prometheus.Counter
}

// New registers all instruments on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Event sessions currently held in memory.",
		}),
		ParticipantsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participants_added_total",
			Help:      "Participants appended to session lists, by source.",
		}, []string{"source"}),
		DrawsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draws_started_total",
			Help:      "Prize draw animations started.",
		}),
		DrawsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draws_committed_total",
			Help:      "Winners committed to draw history.",
		}),
		DrawsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draws_rejected_total",
			Help:      "Draw requests refused, by reason.",
		}, []string{"reason"}),
		GroupingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groupings_total",
			Help:      "Group partitions generated.",
		}),
		GroupSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "group_size",
			Help:      "Requested group sizes.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
		}),
		ExportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Group partitions exported as CSV.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SessionsActive,
		m.ParticipantsAdded,
		m.DrawsStarted,
		m.DrawsCommitted,
		m.DrawsRejected,
		m.GroupingsTotal,
		m.GroupSize,
		m.ExportsTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
