package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики подсистемы обзора рынка. Регистрируются в реестре по умолчанию
// и отдаются на /metrics.
var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "economy_cache_hits_total",
		Help: "Number of requests answered from the volatile cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "economy_cache_misses_total",
		Help: "Number of requests that missed the volatile cache.",
	})

	RefreshCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "economy_refresh_cycles_total",
		Help: "Number of refresh cycles that performed outbound calls.",
	})

	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "economy_source_failures_total",
		Help: "Number of per-source fetch or validation failures.",
	}, []string{"source"})

	BackupFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "economy_backup_fallbacks_total",
		Help: "Number of cycles that produced no live data at all.",
	})
)
