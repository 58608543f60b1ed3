package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds all Prometheus metrics for the amm module
type AMMMetrics struct {
	// Pool metrics
	PoolsCreated prometheus.Counter
	PoolCount    prometheus.Gauge

	// Swap metrics
	SwapsTotal     *prometheus.CounterVec
	SwapVolume     *prometheus.CounterVec
	SpreadRejected *prometheus.CounterVec

	// Liquidity metrics
	LiquidityProvided  *prometheus.CounterVec
	LiquidityWithdrawn *prometheus.CounterVec

	// Fee metrics
	ProtocolFeesCollected *prometheus.CounterVec
	BurnFeesBurned        *prometheus.CounterVec

	// Solver metrics
	ConvergeFailures prometheus.Counter
	NewtonIterations prometheus.Histogram
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers amm metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "pools_created_total",
					Help:      "Total pools created",
				},
			),
			PoolCount: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "pool_count",
					Help:      "Current number of pools",
				},
			),
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total swaps executed",
				},
				[]string{"pool_id", "pool_type"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "swap_volume",
					Help:      "Cumulative offer-side swap volume",
				},
				[]string{"pool_id", "denom"},
			),
			SpreadRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "spread_rejections_total",
					Help:      "Swaps rejected by spread or slippage guards",
				},
				[]string{"pool_id", "reason"},
			),
			LiquidityProvided: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "liquidity_provided_total",
					Help:      "Total liquidity provisions",
				},
				[]string{"pool_id"},
			),
			LiquidityWithdrawn: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "liquidity_withdrawn_total",
					Help:      "Total liquidity withdrawals",
				},
				[]string{"pool_id"},
			),
			ProtocolFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "protocol_fees_collected_total",
					Help:      "Protocol fees drained to the reward collector",
				},
				[]string{"pool_id", "denom"},
			),
			BurnFeesBurned: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "burn_fees_burned_total",
					Help:      "Burn fees destroyed via the bank module",
				},
				[]string{"pool_id", "denom"},
			),
			ConvergeFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "converge_failures_total",
					Help:      "Newton solver convergence failures",
				},
			),
			NewtonIterations: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "lagoon",
					Subsystem: "amm",
					Name:      "newton_iterations",
					Help:      "Newton solver iterations per invariant solve",
					Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
				},
			),
		}
	})
	return ammMetrics
}

// GetAMMMetrics returns the singleton amm metrics instance
func GetAMMMetrics() *AMMMetrics {
	if ammMetrics == nil {
		return NewAMMMetrics()
	}
	return ammMetrics
}
