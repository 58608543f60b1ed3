package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BondingMetrics exposes Prometheus counters for the bonding module.
type BondingMetrics struct {
	BondsTotal       *prometheus.CounterVec
	UnbondsTotal     *prometheus.CounterVec
	ClaimsTotal      prometheus.Counter
	RewardsDeposited *prometheus.CounterVec
	BucketsPromoted  prometheus.Counter
}

var (
	bondingMetricsOnce sync.Once
	bondingMetrics     *BondingMetrics
)

// NewBondingMetrics returns the process-wide bonding metrics set,
// registering the collectors on first use.
func NewBondingMetrics() *BondingMetrics {
	bondingMetricsOnce.Do(func() {
		bondingMetrics = &BondingMetrics{
			BondsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lagoon",
				Subsystem: "bonding",
				Name:      "bonds_total",
				Help:      "Number of bond operations, by denom.",
			}, []string{"denom"}),
			UnbondsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lagoon",
				Subsystem: "bonding",
				Name:      "unbonds_total",
				Help:      "Number of unbond operations, by denom.",
			}, []string{"denom"}),
			ClaimsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "lagoon",
				Subsystem: "bonding",
				Name:      "claims_total",
				Help:      "Number of executed reward claims.",
			}),
			RewardsDeposited: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lagoon",
				Subsystem: "bonding",
				Name:      "rewards_deposited",
				Help:      "Reward coins deposited into the upcoming bucket, by denom.",
			}, []string{"denom"}),
			BucketsPromoted: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "lagoon",
				Subsystem: "bonding",
				Name:      "buckets_promoted",
				Help:      "Upcoming buckets promoted to claimable reward buckets.",
			}),
		}
	})
	return bondingMetrics
}
