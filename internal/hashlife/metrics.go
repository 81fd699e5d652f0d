package hashlife

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus counters aggregated over every Store in the process.
var (
	nodesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashlife_nodes_created_total",
		Help: "Interior nodes allocated by the canonical registry",
	})

	nodesReclaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashlife_nodes_reclaimed_total",
		Help: "Registry entries dropped after their node was collected",
	})

	forwardCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashlife_forward_cache_hits_total",
		Help: "Forward results served from a node's cache",
	})

	forwardComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashlife_forward_computations_total",
		Help: "Forward results computed and stored on a node",
	})

	baseCases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashlife_base_cases_total",
		Help: "4x4 blocks resolved by the bit-mask rule",
	})

	doublingSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hashlife_doubling_steps_total",
		Help: "Root advances by exponent",
	}, []string{"exponent"})
)
