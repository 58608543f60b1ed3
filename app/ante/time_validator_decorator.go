package ante

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MaxFutureBlockTime is how far in the future a block time can be.
// Epoch rollovers key off the block clock, so a timestamp pushed
// forward would let rewards be promoted early.
const MaxFutureBlockTime = 30 * time.Second

// TimeValidatorDecorator rejects transactions in blocks whose timestamp
// is too far ahead of local wall-clock time.
type TimeValidatorDecorator struct{}

// NewTimeValidatorDecorator creates a new TimeValidatorDecorator
func NewTimeValidatorDecorator() TimeValidatorDecorator {
	return TimeValidatorDecorator{}
}

// AnteHandle validates the block time before processing transactions.
// Simulation and the genesis block skip the check; historical block
// times are never rejected, since nodes catching up replay old blocks.
func (tvd TimeValidatorDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	if simulate || ctx.BlockHeight() <= 1 {
		return next(ctx, tx, simulate)
	}

	// Previous block time is not reliably available here, so only the
	// future drift cap is enforced. Monotonicity is CometBFT's job.
	if err := ValidateBlockTime(ctx.BlockTime(), time.Time{}, time.Now()); err != nil {
		return ctx, sdkerrors.ErrInvalidRequest.Wrap(err.Error())
	}

	return next(ctx, tx, simulate)
}

// ValidateBlockTime validates a block timestamp against the future
// drift cap and, when prevBlockTime is set, monotonic progression.
func ValidateBlockTime(blockTime, prevBlockTime, currentTime time.Time) error {
	if limit := currentTime.Add(MaxFutureBlockTime); blockTime.After(limit) {
		return fmt.Errorf(
			"block time %s is too far in the future (max drift: %s from %s)",
			blockTime, MaxFutureBlockTime, currentTime,
		)
	}

	if !prevBlockTime.IsZero() && blockTime.Before(prevBlockTime) {
		return fmt.Errorf("block time %s is before previous block time %s", blockTime, prevBlockTime)
	}

	return nil
}
