package roadmap

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments a Manager. A nil *Metrics records nothing.
type Metrics struct {
	mutations   *prometheus.CounterVec
	pathQueries *prometheus.CounterVec
	pathLatency prometheus.Histogram
}

// NewMetrics registers the roadgraph collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadgraph",
			Name:      "mutations_total",
			Help:      "Town and road mutations by operation and outcome.",
		}, []string{"op", "result"}),
		pathQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadgraph",
			Name:      "path_queries_total",
			Help:      "Shortest-path queries by outcome (found, none).",
		}, []string{"result"}),
		pathLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadgraph",
			Name:      "path_query_duration_seconds",
			Help:      "Wall time of a shortest-path query including reconstruction.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
}

func (m *Metrics) observeMutation(op string, ok bool) {
	if m == nil {
		return
	}
	result := "applied"
	if !ok {
		result = "rejected"
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) observePath(found bool, d time.Duration) {
	if m == nil {
		return
	}
	result := "found"
	if !found {
		result = "none"
	}
	m.pathQueries.WithLabelValues(result).Inc()
	m.pathLatency.Observe(d.Seconds())
}
