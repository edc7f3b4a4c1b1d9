package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BrowseTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "browse_transitions_total", Help: "State machine transitions."},
		[]string{"catalog", "event", "to_state"},
	)
	CatalogLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog", Name: "load_duration_seconds",
			Help:    "Catalog load duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"catalog", "source"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "catalog", Name: "active_sessions", Help: "Mounted browse sessions."},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(BrowseTransitions, CatalogLoadDuration, CacheEvents, ActiveSessions)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveTransition(catalog, event, toState string) {
	BrowseTransitions.WithLabelValues(catalog, event, toState).Inc()
}

func ObserveLoad(catalog, source string, dur time.Duration) {
	CatalogLoadDuration.WithLabelValues(catalog, source).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
