package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records chain-level and module-level measurements through the
// OpenTelemetry meter. All recorders are safe for concurrent use.
type Metrics struct {
	txCounter    metric.Int64Counter
	txDuration   metric.Float64Histogram
	txGasUsed    metric.Int64Histogram
	blockHeight  metric.Int64Gauge
	swapCounter  metric.Int64Counter
	epochCounter metric.Int64Counter
	claimCounter metric.Int64Counter
}

// NewMetrics creates the instrument set used by the node
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	txCounter, err := meter.Int64Counter(
		"lagoon.tx.total",
		metric.WithDescription("Total number of transactions processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tx counter: %w", err)
	}

	txDuration, err := meter.Float64Histogram(
		"lagoon.tx.duration",
		metric.WithDescription("Transaction execution duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tx duration histogram: %w", err)
	}

	txGasUsed, err := meter.Int64Histogram(
		"lagoon.tx.gas_used",
		metric.WithDescription("Gas used per transaction"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gas histogram: %w", err)
	}

	blockHeight, err := meter.Int64Gauge(
		"lagoon.block.height",
		metric.WithDescription("Current block height"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create block height gauge: %w", err)
	}

	swapCounter, err := meter.Int64Counter(
		"lagoon.amm.swaps.total",
		metric.WithDescription("Total number of pool swaps executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create swap counter: %w", err)
	}

	epochCounter, err := meter.Int64Counter(
		"lagoon.epochs.rollovers.total",
		metric.WithDescription("Total number of epoch rollovers"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create epoch counter: %w", err)
	}

	claimCounter, err := meter.Int64Counter(
		"lagoon.bonding.claims.total",
		metric.WithDescription("Total number of reward claims settled"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create claim counter: %w", err)
	}

	return &Metrics{
		txCounter:    txCounter,
		txDuration:   txDuration,
		txGasUsed:    txGasUsed,
		blockHeight:  blockHeight,
		swapCounter:  swapCounter,
		epochCounter: epochCounter,
		claimCounter: claimCounter,
	}, nil
}

// RecordTransaction records metrics for a processed transaction
func (m *Metrics) RecordTransaction(ctx context.Context, msgType string, duration time.Duration, gasUsed int64, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("msg.type", msgType),
		attribute.Bool("success", success),
	)

	m.txCounter.Add(ctx, 1, attrs)
	m.txDuration.Record(ctx, duration.Seconds(), attrs)
	m.txGasUsed.Record(ctx, gasUsed, attrs)
}

// RecordBlockHeight records the current block height
func (m *Metrics) RecordBlockHeight(ctx context.Context, height int64) {
	m.blockHeight.Record(ctx, height)
}

// RecordSwap records a completed swap against a pool
func (m *Metrics) RecordSwap(ctx context.Context, poolID uint64, offerDenom, askDenom string) {
	m.swapCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Int64("pool.id", int64(poolID)),
		attribute.String("offer_denom", offerDenom),
		attribute.String("ask_denom", askDenom),
	))
}

// RecordEpochRollover records an epoch rollover
func (m *Metrics) RecordEpochRollover(ctx context.Context, epochID uint64) {
	m.epochCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Int64("epoch.id", int64(epochID)),
	))
}

// RecordClaim records a settled reward claim
func (m *Metrics) RecordClaim(ctx context.Context, bucketCount int) {
	m.claimCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("bucket_count", bucketCount),
	))
}
