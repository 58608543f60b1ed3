package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/lagoon-chain/lagoon/testutil/keeper"
	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

func rewardCoins(amount int64) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(rewardDenom, sdkmath.NewInt(amount)))
}

func TestDepositRewardsAccumulatesUpcoming(t *testing.T) {
	bk, _, bank, ctx := setupBonding(t)

	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(400)))
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(600)))

	upcoming, err := bk.GetUpcomingBucket(ctx)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_000), upcoming.Total)

	require.Equal(t,
		sdkmath.NewInt(1_000),
		bank.ModuleBalance(types.ModuleName).AmountOf(rewardDenom),
	)

	err = bk.DepositRewards(ctx, bob, sdk.NewCoins())
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)
}

func TestEpochRolloverPromotesBucket(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	ctx = advanceEpoch(t, ek, ctx)

	bucket, err := bk.GetRewardBucket(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_000), bucket.Total)
	require.Equal(t, rewardCoins(1_000), bucket.Available)

	// The snapshot is frozen with weight advanced to the new epoch.
	require.Equal(t, uint64(1), bucket.GlobalIndex.LastUpdated)
	require.Equal(t, sdkmath.NewInt(10_000), bucket.GlobalIndex.LastWeight)
	require.Equal(t, sdkmath.NewInt(10_000), bucket.GlobalIndex.BondedAmount)

	// The upcoming bucket starts over.
	upcoming, err := bk.GetUpcomingBucket(ctx)
	require.NoError(t, err)
	require.True(t, upcoming.Total.IsZero())

	// Empty epochs still promote, so the grace window keeps moving.
	ctx = advanceEpoch(t, ek, ctx)
	empty, err := bk.GetRewardBucket(ctx, 2)
	require.NoError(t, err)
	require.True(t, empty.Total.IsZero())
}

func TestClaimSplitsProportionally(t *testing.T) {
	bk, ek, bank, ctx := setupBonding(t)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	_, err = bk.Bond(ctx, bob, bondCoin(30_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	ctx = advanceEpoch(t, ek, ctx)

	aliceBefore := bank.Balance(alice).AmountOf(rewardDenom)

	claimed, err := bk.Claim(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(250), claimed)
	require.Equal(t,
		aliceBefore.AddRaw(250),
		bank.Balance(alice).AmountOf(rewardDenom),
	)

	claimed, err = bk.Claim(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(750), claimed)

	bucket, err := bk.GetRewardBucket(ctx, 1)
	require.NoError(t, err)
	require.True(t, bucket.Available.IsZero())
	require.Equal(t, rewardCoins(1_000), bucket.Total)
}

func TestClaimIsIdempotentPerEpoch(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	ctx = advanceEpoch(t, ek, ctx)

	_, err = bk.Claim(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1), bk.GetLastClaimedEpoch(ctx, alice))

	_, err = bk.Claim(ctx, alice)
	require.ErrorIs(t, err, types.ErrNothingToClaim)
}

func TestClaimSpansMultipleBuckets(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)

	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))
	ctx = advanceEpoch(t, ek, ctx)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(500)))
	ctx = advanceEpoch(t, ek, ctx)

	// Alice is the only bonder, so both buckets pay out in full at
	// once.
	claimed, err := bk.Claim(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_500), claimed)
	require.Equal(t, uint64(2), bk.GetLastClaimedEpoch(ctx, alice))
}

func TestPendingRewardsIsPure(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	ctx = advanceEpoch(t, ek, ctx)

	pending, buckets, err := bk.PendingRewards(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_000), pending)
	require.Len(t, buckets, 1)

	// The query leaves the bucket untouched.
	bucket, err := bk.GetRewardBucket(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_000), bucket.Available)

	// No bonds means nothing pending, not an error.
	pending, buckets, err = bk.PendingRewards(ctx, bob)
	require.NoError(t, err)
	require.True(t, pending.IsZero())
	require.Empty(t, buckets)
}

func TestClaimWithoutBondFails(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)

	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))
	ctx = advanceEpoch(t, ek, ctx)

	_, err := bk.Claim(ctx, bob)
	require.ErrorIs(t, err, types.ErrNothingToClaim)
}

func TestRewardsExpireAfterGracePeriod(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)

	params, err := bk.GetParams(ctx)
	require.NoError(t, err)
	params.GracePeriod = 2
	require.NoError(t, bk.SetParams(ctx, params))

	_, err = bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	// Bucket 1 is claimable through epoch 2 and expires at epoch 3.
	ctx = advanceEpoch(t, ek, ctx)
	ctx = advanceEpoch(t, ek, ctx)

	pending, _, err := bk.PendingRewards(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_000), pending)

	ctx = advanceEpoch(t, ek, ctx)

	pending, _, err = bk.PendingRewards(ctx, alice)
	require.NoError(t, err)
	require.True(t, pending.IsZero())

	_, err = bk.Claim(ctx, alice)
	require.ErrorIs(t, err, types.ErrNothingToClaim)
}

func TestLateBonderGetsNoShareOfFrozenBucket(t *testing.T) {
	bk, ek, bank, ctx := setupBonding(t)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	ctx = advanceEpoch(t, ek, ctx)

	// Bob bonds after the bucket's snapshot was frozen; the bucket's
	// shares do not shift under him.
	_, err = bk.Bond(ctx, bob, bondCoin(90_000))
	require.NoError(t, err)

	bobBefore := bank.Balance(bob).AmountOf(rewardDenom)

	claimed, err := bk.Claim(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_000), claimed)

	_, err = bk.Claim(ctx, bob)
	require.ErrorIs(t, err, types.ErrNothingToClaim)
	require.Equal(t, bobBefore, bank.Balance(bob).AmountOf(rewardDenom))
}

func TestGenesisRoundTripPreservesLedger(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))
	ctx = advanceEpoch(t, ek, ctx)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(250)))

	exported, err := bk.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Bonds, 1)
	require.Len(t, exported.RewardBuckets, 1)
	require.Equal(t, rewardCoins(250), exported.UpcomingBucket.Total)

	fresh, _, _, freshCtx := keepertest.BondingKeeper(t)
	require.NoError(t, fresh.InitGenesis(freshCtx, *exported))

	reexported, err := fresh.ExportGenesis(freshCtx)
	require.NoError(t, err)
	require.Equal(t, exported, reexported)
}
