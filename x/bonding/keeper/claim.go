package keeper

import (
	"context"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

// ClaimableBuckets returns the indexed buckets the owner can still
// claim from: inside the grace window, newer than the owner's
// last-claimed marker, with funds left and a non-zero owner share.
func (k Keeper) ClaimableBuckets(ctx context.Context, owner sdk.AccAddress) ([]types.RewardBucket, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	current, err := k.epochsKeeper.GetCurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}
	bonds, err := k.GetBondsByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	lastClaimed := k.GetLastClaimedEpoch(ctx, owner)

	var claimable []types.RewardBucket
	var iterErr error
	if err := k.IterateRewardBuckets(ctx, func(bucket types.RewardBucket) bool {
		if bucket.EpochId <= lastClaimed {
			return false
		}
		if !bucket.IsClaimable(current.Id, params.GracePeriod) {
			return false
		}
		if bucket.Available.IsZero() {
			return false
		}
		share, err := types.UserShare(bucket.EpochId, bonds, bucket.GlobalIndex, params.GrowthRate)
		if err != nil {
			iterErr = err
			return true
		}
		if share.IsPositive() {
			claimable = append(claimable, bucket)
		}
		return false
	}); err != nil {
		return nil, err
	}
	if iterErr != nil {
		return nil, iterErr
	}
	return claimable, nil
}

// computeClaim totals the owner's reward across every claimable
// bucket. With execute set it also decrements each bucket's available
// funds; the query form leaves the ledger untouched.
func (k Keeper) computeClaim(ctx context.Context, owner sdk.AccAddress, execute bool) (sdk.Coins, []types.RewardBucket, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, nil, err
	}
	bonds, err := k.GetBondsByOwner(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	buckets, err := k.ClaimableBuckets(ctx, owner)
	if err != nil {
		return nil, nil, err
	}

	total := sdk.NewCoins()
	for i := range buckets {
		bucket := &buckets[i]
		share, err := types.UserShare(bucket.EpochId, bonds, bucket.GlobalIndex, params.GrowthRate)
		if err != nil {
			return nil, nil, err
		}

		for _, tc := range bucket.Total {
			reward := mulShare(tc.Amount, share)
			if !reward.IsPositive() {
				continue
			}
			available := bucket.Available.AmountOf(tc.Denom)
			if reward.GT(available) {
				return nil, nil, types.ErrInvalidReward.Wrapf(
					"reward %s%s exceeds available %s%s in bucket %d",
					reward, tc.Denom, available, tc.Denom, bucket.EpochId,
				)
			}
			claimed := sdk.NewCoin(tc.Denom, reward)
			total = total.Add(claimed)
			if execute {
				bucket.Available = bucket.Available.Sub(claimed)
			}
		}

		if execute {
			if err := k.SetRewardBucket(ctx, *bucket); err != nil {
				return nil, nil, err
			}
		}
	}
	return total, buckets, nil
}

// mulShare computes floor(amount * share) without rounding through a
// decimal.
func mulShare(amount sdkmath.Int, share sdkmath.LegacyDec) sdkmath.Int {
	num := new(big.Int).Mul(amount.BigInt(), share.BigInt())
	num.Quo(num, sdkmath.LegacyOneDec().BigInt())
	return sdkmath.NewIntFromBigInt(num)
}

// PendingRewards is the pure query form of claiming: it reports what
// an execute-claim would pay right now without touching any state and
// without erroring on an empty result.
func (k Keeper) PendingRewards(ctx context.Context, owner sdk.AccAddress) (sdk.Coins, []types.RewardBucket, error) {
	return k.computeClaim(ctx, owner, false)
}

// Claim pays out the owner's share of every claimable bucket and
// advances the last-claimed marker so the same buckets cannot pay
// twice. A claim that nets nothing fails with ErrNothingToClaim.
func (k Keeper) Claim(ctx context.Context, owner sdk.AccAddress) (sdk.Coins, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	total, _, err := k.computeClaim(ctx, owner, true)
	if err != nil {
		return nil, err
	}
	if total.IsZero() {
		return nil, types.ErrNothingToClaim
	}

	current, err := k.epochsKeeper.GetCurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}
	k.SetLastClaimedEpoch(ctx, owner, current.Id)

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, owner, total); err != nil {
		return nil, fmt.Errorf("Claim: pay out: %w", err)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeClaim,
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeyRewards, total.String()),
		),
	)
	if k.metrics != nil {
		k.metrics.ClaimsTotal.Inc()
	}
	return total, nil
}
