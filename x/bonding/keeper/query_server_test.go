package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/x/bonding/keeper"
	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

func TestQueryBondedRollsWeightForward(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)
	qs := keeper.NewQueryServerImpl(*bk)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)

	ctx = advanceEpoch(t, ek, ctx)
	ctx = advanceEpoch(t, ek, ctx)

	resp, err := qs.Bonded(ctx, &types.QueryBondedRequest{Owner: alice.String()})
	require.NoError(t, err)
	require.Len(t, resp.Bonds, 1)
	require.Equal(t, sdkmath.NewInt(20_000), resp.Bonds[0].Weight)
	require.Equal(t, uint64(2), resp.Bonds[0].LastUpdated)

	// The stored record is untouched by the query.
	stored, _, err := bk.GetBond(ctx, alice, bondDenom)
	require.NoError(t, err)
	require.True(t, stored.Weight.IsZero())
	require.Equal(t, uint64(0), stored.LastUpdated)

	_, err = qs.Bonded(ctx, &types.QueryBondedRequest{Owner: "nope"})
	require.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestQueryClaimable(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)
	qs := keeper.NewQueryServerImpl(*bk)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	ctx = advanceEpoch(t, ek, ctx)

	resp, err := qs.Claimable(ctx, &types.QueryClaimableRequest{Owner: alice.String()})
	require.NoError(t, err)
	require.Equal(t, rewardCoins(1_000), resp.Total)
	require.Len(t, resp.Buckets, 1)

	resp, err = qs.Claimable(ctx, &types.QueryClaimableRequest{Owner: bob.String()})
	require.NoError(t, err)
	require.True(t, resp.Total.IsZero())
	require.Empty(t, resp.Buckets)
}

func TestQueryGlobalIndexLiveAndFrozen(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)
	qs := keeper.NewQueryServerImpl(*bk)

	_, err := bk.Bond(ctx, alice, bondCoin(10_000))
	require.NoError(t, err)
	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))

	ctx = advanceEpoch(t, ek, ctx)

	// Bonding more moves the live index away from the frozen snapshot.
	_, err = bk.Claim(ctx, alice)
	require.NoError(t, err)
	_, err = bk.Bond(ctx, alice, bondCoin(30_000))
	require.NoError(t, err)

	live, err := qs.GlobalIndex(ctx, &types.QueryGlobalIndexRequest{})
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(40_000), live.Index.BondedAmount)

	epochOne := uint64(1)
	frozen, err := qs.GlobalIndex(ctx, &types.QueryGlobalIndexRequest{EpochId: &epochOne})
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(10_000), frozen.Index.BondedAmount)
	require.Equal(t, uint64(1), frozen.Index.LastUpdated)

	missing := uint64(99)
	_, err = qs.GlobalIndex(ctx, &types.QueryGlobalIndexRequest{EpochId: &missing})
	require.ErrorIs(t, err, types.ErrBucketNotFound)
}

func TestQueryRewardBucketsFiltersExpired(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)
	qs := keeper.NewQueryServerImpl(*bk)

	params, err := bk.GetParams(ctx)
	require.NoError(t, err)
	params.GracePeriod = 2
	require.NoError(t, bk.SetParams(ctx, params))

	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))
	ctx = advanceEpoch(t, ek, ctx) // bucket 1
	ctx = advanceEpoch(t, ek, ctx) // bucket 2
	ctx = advanceEpoch(t, ek, ctx) // bucket 3, bucket 1 now expired

	resp, err := qs.RewardBuckets(ctx, &types.QueryRewardBucketsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Buckets, 2)
	for _, bucket := range resp.Buckets {
		require.Greater(t, bucket.EpochId, uint64(1))
	}
}

func TestQueryExpiringRewardBucket(t *testing.T) {
	bk, ek, _, ctx := setupBonding(t)
	qs := keeper.NewQueryServerImpl(*bk)

	params, err := bk.GetParams(ctx)
	require.NoError(t, err)
	params.GracePeriod = 2
	require.NoError(t, bk.SetParams(ctx, params))

	// Nothing promoted yet: nothing is about to expire.
	resp, err := qs.ExpiringRewardBucket(ctx, &types.QueryExpiringRewardBucketRequest{})
	require.NoError(t, err)
	require.Nil(t, resp.Bucket)

	require.NoError(t, bk.DepositRewards(ctx, bob, rewardCoins(1_000)))
	ctx = advanceEpoch(t, ek, ctx)
	ctx = advanceEpoch(t, ek, ctx)

	// Bucket 1 leaves the grace window on the next rollover.
	resp, err = qs.ExpiringRewardBucket(ctx, &types.QueryExpiringRewardBucketRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.Bucket)
	require.Equal(t, uint64(1), resp.Bucket.EpochId)
}

func TestQueryParamsAndNilRequests(t *testing.T) {
	bk, _, _, ctx := setupBonding(t)
	qs := keeper.NewQueryServerImpl(*bk)

	resp, err := qs.Params(ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{bondDenom}, resp.Params.BondDenoms)

	_, err = qs.Params(ctx, nil)
	require.Error(t, err)
	_, err = qs.Bonded(ctx, nil)
	require.Error(t, err)
	_, err = qs.Claimable(ctx, nil)
	require.Error(t, err)
}
