package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/lagoon-chain/lagoon/testutil/keeper"
	"github.com/lagoon-chain/lagoon/x/amm/keeper"
	"github.com/lagoon-chain/lagoon/x/amm/types"
)

func createStablePool(t *testing.T, k *keeper.Keeper, bank *keepertest.MockBankKeeper, ctx sdk.Context, amp uint64) uint64 {
	t.Helper()

	deposit := sdk.NewCoins(
		sdk.NewCoin("uusdc", sdkmath.NewInt(1_000_000_000)),
		sdk.NewCoin("uusdt", sdkmath.NewInt(1_000_000_000)),
	)
	bank.FundAccount(testCreator, deposit)
	pool, _, err := k.CreatePool(ctx, testCreator, &types.MsgCreatePool{
		Creator:  testCreator.String(),
		PoolType: types.PoolTypeStableSwap,
		Assets: []types.PoolAsset{
			{Denom: "uusdc", Amount: sdkmath.NewInt(1_000_000_000), Decimals: 6},
			{Denom: "uusdt", Amount: sdkmath.NewInt(1_000_000_000), Decimals: 6},
		},
		Fees: types.ZeroPoolFees(),
		Amp:  amp,
	})
	require.NoError(t, err)
	return pool.Id
}

func TestRampAmpSchedulesLinearRamp(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	ctx = ctx.WithBlockHeight(100)
	poolID := createStablePool(t, k, bank, ctx, 100)

	target := ctx.BlockHeight() + types.MinRampBlocks
	require.NoError(t, k.RampAmp(ctx, keepertest.TestAuthority, poolID, 400, target))

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, uint64(100), pool.Ramp.InitialAmp)
	require.Equal(t, uint64(400), pool.Ramp.TargetAmp)

	// Midway through the ramp the effective amp is the midpoint.
	mid := ctx.BlockHeight() + types.MinRampBlocks/2
	require.Equal(t, uint64(250), pool.Ramp.AmpAtHeight(mid))
	require.Equal(t, uint64(400), pool.Ramp.AmpAtHeight(target+1))
	require.Equal(t, uint64(100), pool.Ramp.AmpAtHeight(ctx.BlockHeight()))
}

func TestRampAmpUnauthorized(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createStablePool(t, k, bank, ctx, 100)

	err := k.RampAmp(ctx, testTrader.String(), poolID, 200, ctx.BlockHeight()+types.MinRampBlocks)
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestRampAmpOnConstantProductPool(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	err := k.RampAmp(ctx, keepertest.TestAuthority, poolID, 200, ctx.BlockHeight()+types.MinRampBlocks)
	require.ErrorIs(t, err, types.ErrInvalidPoolType)
}

func TestRampAmpTooFast(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createStablePool(t, k, bank, ctx, 100)

	// More than 10x in either direction is rejected.
	err := k.RampAmp(ctx, keepertest.TestAuthority, poolID, 1_001, ctx.BlockHeight()+types.MinRampBlocks)
	require.ErrorIs(t, err, types.ErrAmpRampTooFast)

	err = k.RampAmp(ctx, keepertest.TestAuthority, poolID, 9, ctx.BlockHeight()+types.MinRampBlocks)
	require.ErrorIs(t, err, types.ErrAmpRampTooFast)
}

func TestRampAmpTooShort(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createStablePool(t, k, bank, ctx, 100)

	err := k.RampAmp(ctx, keepertest.TestAuthority, poolID, 200, ctx.BlockHeight()+types.MinRampBlocks-1)
	require.ErrorIs(t, err, types.ErrAmpRampTooShort)
}

func TestStopRampFreezesCurrentAmp(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	ctx = ctx.WithBlockHeight(100)
	poolID := createStablePool(t, k, bank, ctx, 100)

	target := ctx.BlockHeight() + types.MinRampBlocks
	require.NoError(t, k.RampAmp(ctx, keepertest.TestAuthority, poolID, 400, target))

	// Stop halfway: the amp freezes at its interpolated value.
	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + types.MinRampBlocks/2)
	require.NoError(t, k.StopRamp(ctx, keepertest.TestAuthority, poolID))

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, uint64(250), pool.Ramp.InitialAmp)
	require.Equal(t, uint64(250), pool.Ramp.TargetAmp)
	require.Equal(t, uint64(250), pool.Ramp.AmpAtHeight(ctx.BlockHeight()+1_000_000))
}
