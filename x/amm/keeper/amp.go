package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// RampAmp schedules a linear amplification change for a stableswap
// pool. The target must stay within a bounded multiple of the current
// effective amp and the ramp must run for a minimum number of blocks,
// so governance cannot shock the curve.
func (k Keeper) RampAmp(ctx context.Context, authority string, poolID uint64, targetAmp uint64, targetBlock int64) error {
	if authority != k.GetAuthority() {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.GetAuthority(), authority)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if !pool.IsStableSwap() {
		return types.ErrInvalidPoolType.Wrapf("pool %d is not a stableswap pool", poolID)
	}
	if targetAmp < types.MinAmp || targetAmp > types.MaxAmp {
		return types.ErrInvalidAmpFactor.Wrapf("target amp %d outside [%d, %d]", targetAmp, types.MinAmp, types.MaxAmp)
	}

	height := sdkCtx.BlockHeight()
	current := pool.Ramp.AmpAtHeight(height)
	if targetAmp > current*types.MaxAmpChange || targetAmp < current/types.MaxAmpChange {
		return types.ErrAmpRampTooFast.Wrapf("target amp %d more than %dx away from current %d", targetAmp, types.MaxAmpChange, current)
	}
	if targetBlock < height+types.MinRampBlocks {
		return types.ErrAmpRampTooShort.Wrapf("target block %d is less than %d blocks out", targetBlock, types.MinRampBlocks)
	}

	pool.Ramp = types.RampState{
		InitialAmp:      current,
		TargetAmp:       targetAmp,
		InitialAmpBlock: height,
		TargetAmpBlock:  targetBlock,
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRampAmp,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyAmp, fmt.Sprintf("%d", current)),
			sdk.NewAttribute(types.AttributeKeyTargetAmp, fmt.Sprintf("%d", targetAmp)),
			sdk.NewAttribute(types.AttributeKeyTargetBlock, fmt.Sprintf("%d", targetBlock)),
		),
	)
	return nil
}

// StopRamp freezes a pool's amplification at its current effective
// value, cancelling any in-flight ramp.
func (k Keeper) StopRamp(ctx context.Context, authority string, poolID uint64) error {
	if authority != k.GetAuthority() {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.GetAuthority(), authority)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if !pool.IsStableSwap() {
		return types.ErrInvalidPoolType.Wrapf("pool %d is not a stableswap pool", poolID)
	}

	height := sdkCtx.BlockHeight()
	current := pool.Ramp.AmpAtHeight(height)
	pool.Ramp = types.RampState{
		InitialAmp:      current,
		TargetAmp:       current,
		InitialAmpBlock: height,
		TargetAmpBlock:  height,
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStopRamp,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyAmp, fmt.Sprintf("%d", current)),
		),
	)
	return nil
}
