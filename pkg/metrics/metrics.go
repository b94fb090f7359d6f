package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansTotal counts eligibility scans processed, labelled by outcome.
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grantscan_scans_total",
		Help: "Total number of eligibility scans processed",
	}, []string{"status"})

	// ScanDuration tracks end to end scan processing time.
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grantscan_scan_duration_seconds",
		Help:    "Time spent running a full eligibility scan",
		Buckets: prometheus.DefBuckets,
	})

	// GrantsMatched tracks how many grants each scan returned.
	GrantsMatched = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grantscan_grants_matched",
		Help:    "Number of grants matched per scan",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	// CatalogCacheHits counts catalog snapshot reads served from Redis.
	CatalogCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grantscan_catalog_cache_hits_total",
		Help: "Catalog snapshot reads served from cache",
	})

	// CatalogCacheMisses counts catalog snapshot reads that fell through to Postgres.
	CatalogCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grantscan_catalog_cache_misses_total",
		Help: "Catalog snapshot reads that loaded from the database",
	})
)
