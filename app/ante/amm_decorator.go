package ante

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ammkeeper "github.com/lagoon-chain/lagoon/x/amm/keeper"
	ammtypes "github.com/lagoon-chain/lagoon/x/amm/types"
)

// Gas charged up front for stateful pre-validation of amm messages.
const (
	poolLookupGas     uint64 = 5_000
	swapValidationGas uint64 = 10_000
)

// AMMDecorator validates amm module-specific transaction requirements
// before the messages reach the msg server: the referenced pool must
// exist and swap legs must name assets the pool actually holds. This
// rejects doomed swaps before fee deduction and signature work is paid
// for in full.
type AMMDecorator struct {
	keeper ammkeeper.Keeper
}

// NewAMMDecorator creates a new AMMDecorator
func NewAMMDecorator(keeper ammkeeper.Keeper) AMMDecorator {
	return AMMDecorator{
		keeper: keeper,
	}
}

// AnteHandle implements the AnteDecorator interface
func (ad AMMDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (newCtx sdk.Context, err error) {
	// Skip validation during simulation
	if simulate {
		return next(ctx, tx, simulate)
	}

	for _, msg := range tx.GetMsgs() {
		switch msg := msg.(type) {
		case *ammtypes.MsgSwap:
			if err := ad.validateSwap(ctx, msg); err != nil {
				return ctx, err
			}
		case *ammtypes.MsgProvideLiquidity:
			if err := ad.validatePoolExists(ctx, msg.PoolId); err != nil {
				return ctx, err
			}
		case *ammtypes.MsgWithdrawLiquidity:
			if err := ad.validatePoolExists(ctx, msg.PoolId); err != nil {
				return ctx, err
			}
		case *ammtypes.MsgRampAmp:
			if err := ad.validateRampAmp(ctx, msg); err != nil {
				return ctx, err
			}
		}
	}

	return next(ctx, tx, simulate)
}

// validateSwap checks the pool exists and trades the denoms the message names
func (ad AMMDecorator) validateSwap(ctx sdk.Context, msg *ammtypes.MsgSwap) error {
	ctx.GasMeter().ConsumeGas(swapValidationGas, "swap validation")

	pool, err := ad.keeper.GetPool(ctx, msg.PoolId)
	if err != nil {
		return sdkerrors.ErrNotFound.Wrapf("pool %d not found", msg.PoolId)
	}

	if _, err := pool.AssetIndex(msg.OfferAsset.Denom); err != nil {
		return sdkerrors.ErrInvalidRequest.Wrapf("pool %d does not hold %s", msg.PoolId, msg.OfferAsset.Denom)
	}
	if _, err := pool.AssetIndex(msg.AskDenom); err != nil {
		return sdkerrors.ErrInvalidRequest.Wrapf("pool %d does not hold %s", msg.PoolId, msg.AskDenom)
	}

	return nil
}

// validateRampAmp checks the target pool exists and is a stableswap pool
func (ad AMMDecorator) validateRampAmp(ctx sdk.Context, msg *ammtypes.MsgRampAmp) error {
	ctx.GasMeter().ConsumeGas(poolLookupGas, "ramp validation")

	pool, err := ad.keeper.GetPool(ctx, msg.PoolId)
	if err != nil {
		return sdkerrors.ErrNotFound.Wrapf("pool %d not found", msg.PoolId)
	}

	if !pool.IsStableSwap() {
		return sdkerrors.ErrInvalidRequest.Wrapf("pool %d is not a stableswap pool", msg.PoolId)
	}

	return nil
}

func (ad AMMDecorator) validatePoolExists(ctx sdk.Context, poolID uint64) error {
	ctx.GasMeter().ConsumeGas(poolLookupGas, "pool lookup")

	if _, err := ad.keeper.GetPool(ctx, poolID); err != nil {
		return sdkerrors.ErrNotFound.Wrapf("pool %d not found", poolID)
	}

	return nil
}
