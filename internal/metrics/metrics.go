// Package metrics records search statistics in Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/pathfinder"
)

// Observer implements pathfinder.Observer with Prometheus collectors.
type Observer struct {
	searches   *prometheus.CounterVec
	expansions prometheus.Histogram
	discovered prometheus.Histogram
	duration   prometheus.Histogram
}

var _ pathfinder.Observer = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathfinder_searches_total",
			Help: "Total searches by result",
		}, []string{"result"}),
		expansions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfinder_search_expanded_nodes",
			Help:    "Nodes finalized per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		discovered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfinder_search_discovered_nodes",
			Help:    "Nodes discovered per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfinder_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	reg.MustRegister(o.searches, o.expansions, o.discovered, o.duration)
	return o
}

// Result labels a finished search: found, not_found or error.
func Result(stats pathfinder.SearchStats) string {
	switch {
	case stats.Err != nil:
		return "error"
	case stats.Found:
		return "found"
	default:
		return "not_found"
	}
}

func (o *Observer) ObserveSearch(stats pathfinder.SearchStats) {
	o.searches.WithLabelValues(Result(stats)).Inc()
	o.expansions.Observe(float64(stats.ExpandedNodes))
	o.discovered.Observe(float64(stats.Discovered))
	o.duration.Observe(stats.Duration.Seconds())
}
