package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search metrics - Track mining volume and outcomes
var (
	SearchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "create2_miner_searches_started_total",
		Help: "Total number of salt searches started",
	})

	SearchesSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "create2_miner_searches_succeeded_total",
		Help: "Total number of salt searches that found a matching address",
	})

	SearchesExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "create2_miner_searches_exhausted_total",
		Help: "Total number of salt searches that hit the attempt cap",
	})

	SearchesCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "create2_miner_searches_cancelled_total",
		Help: "Total number of salt searches cancelled before completion",
	})

	AttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "create2_miner_attempts_total",
		Help: "Total number of salts tried across all searches",
	})
)

// Performance metrics - Track search latency
var (
	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "create2_miner_search_duration_seconds",
		Help:    "Wall-clock time of a single salt search",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)

// State metrics - Track current load
var (
	ActiveSearches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "create2_miner_active_searches",
		Help: "Number of salt searches currently running",
	})
)

// Derivation metrics - Track the synchronous compute path
var (
	AddressesDerived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "create2_miner_addresses_derived_total",
		Help: "Total number of one-shot CREATE2 address derivations served",
	})
)
