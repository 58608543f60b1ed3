package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/epochs/types"
)

// GetCurrentEpoch returns the current epoch record.
func (k Keeper) GetCurrentEpoch(ctx context.Context) (types.EpochInfo, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.CurrentEpochKey)
	if bz == nil {
		return types.EpochInfo{}, types.ErrEpochNotFound.Wrap("no epoch recorded")
	}
	var epoch types.EpochInfo
	if err := json.Unmarshal(bz, &epoch); err != nil {
		return types.EpochInfo{}, fmt.Errorf("GetCurrentEpoch: unmarshal: %w", err)
	}
	return epoch, nil
}

// SetCurrentEpoch stores the current epoch record.
func (k Keeper) SetCurrentEpoch(ctx context.Context, epoch types.EpochInfo) error {
	bz, err := json.Marshal(epoch)
	if err != nil {
		return fmt.Errorf("SetCurrentEpoch: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.CurrentEpochKey, bz)
	return nil
}

// CreateEpoch advances to the next epoch once the configured duration
// has elapsed, then runs the registered rollover hooks inside the same
// transaction. trigger is recorded on the event for observability;
// the operation itself is permissionless.
func (k Keeper) CreateEpoch(ctx context.Context, trigger string) (types.EpochInfo, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	current, err := k.GetCurrentEpoch(ctx)
	if err != nil {
		return types.EpochInfo{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.EpochInfo{}, err
	}

	now := sdkCtx.BlockTime()
	if !current.HasElapsed(now, params.EpochDuration) {
		return types.EpochInfo{}, types.ErrEpochNotElapsed.Wrapf(
			"epoch %d started %s, next at %s, block time %s",
			current.Id, current.StartTime, current.StartTime.Add(params.EpochDuration), now,
		)
	}

	next := current.Next(params.EpochDuration)
	if err := k.SetCurrentEpoch(ctx, next); err != nil {
		return types.EpochInfo{}, err
	}

	if k.hooks != nil {
		if err := k.hooks.AfterEpochCreated(ctx, next.Id); err != nil {
			return types.EpochInfo{}, fmt.Errorf("CreateEpoch: hooks for epoch %d: %w", next.Id, err)
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreateEpoch,
			sdk.NewAttribute(types.AttributeKeyEpochID, fmt.Sprintf("%d", next.Id)),
			sdk.NewAttribute(types.AttributeKeyStartTime, next.StartTime.String()),
			sdk.NewAttribute(types.AttributeKeyTrigger, trigger),
		),
	)

	return next, nil
}

// EpochIsStale reports whether a full duration has passed since the
// current epoch started without a rollover. While stale, share
// computations would run against an outdated global index, so bonding
// operations are gated on this check.
func (k Keeper) EpochIsStale(ctx context.Context) (bool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	current, err := k.GetCurrentEpoch(ctx)
	if err != nil {
		return false, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return false, err
	}
	return current.HasElapsed(sdkCtx.BlockTime(), params.EpochDuration), nil
}
