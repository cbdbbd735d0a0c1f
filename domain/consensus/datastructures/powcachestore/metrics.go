package powcachestore

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "heavypow",
		Subsystem: "powcache",
		Name:      "hits_total",
		Help:      "Number of pow cache lookups answered from the cache.",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "heavypow",
		Subsystem: "powcache",
		Name:      "misses_total",
		Help:      "Number of pow cache lookups that required a HeavyHash computation.",
	})
	cacheWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "heavypow",
		Subsystem: "powcache",
		Name:      "write_errors_total",
		Help:      "Number of pow cache writes the backing database rejected.",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, cacheWriteErrors)
}
