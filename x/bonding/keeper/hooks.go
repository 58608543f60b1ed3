package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
	epochstypes "github.com/lagoon-chain/lagoon/x/epochs/types"
)

// Hooks is the epochs listener that matures reward buckets.
type Hooks struct {
	k Keeper
}

var _ epochstypes.EpochHooks = Hooks{}

// EpochHooks returns the x/epochs hook wrapper for this keeper.
func (k Keeper) EpochHooks() Hooks {
	return Hooks{k: k}
}

// AfterEpochCreated promotes the upcoming bucket into the indexed
// ledger under the new epoch id with a frozen global-index snapshot,
// then starts a fresh upcoming bucket. An empty upcoming bucket still
// promotes, so the rolling grace window advances every epoch.
func (h Hooks) AfterEpochCreated(ctx context.Context, epochID uint64) error {
	k := h.k
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	upcoming, err := k.GetUpcomingBucket(ctx)
	if err != nil {
		return err
	}
	index, err := k.GetGlobalIndex(ctx)
	if err != nil {
		return err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	// Freeze the snapshot with weight advanced to the new epoch, so
	// share computations against this bucket agree with live bond
	// weights recomputed at the same epoch.
	index.LastWeight = index.WeightAt(epochID, params.GrowthRate)
	index.LastUpdated = epochID

	bucket := types.RewardBucket{
		EpochId:     epochID,
		Total:       upcoming.Total,
		Available:   upcoming.Total,
		GlobalIndex: index,
	}
	if err := k.SetRewardBucket(ctx, bucket); err != nil {
		return err
	}
	if err := k.SetUpcomingBucket(ctx, types.UpcomingRewardBucket{Total: sdk.NewCoins()}); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBucketPromoted,
			sdk.NewAttribute(types.AttributeKeyEpochID, fmt.Sprintf("%d", epochID)),
			sdk.NewAttribute(types.AttributeKeyRewards, bucket.Total.String()),
		),
	)
	if k.metrics != nil {
		k.metrics.BucketsPromoted.Inc()
	}
	return nil
}
