package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/lagoon-chain/lagoon/testutil/keeper"
	"github.com/lagoon-chain/lagoon/x/amm/types"
)

var testProvider = sdk.AccAddress([]byte("provider____________"))

func TestProvideLiquidityProportional(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	before, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	// A deposit of 10% of each reserve should mint close to 10% of
	// the existing share supply.
	deposit := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(3_000_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(2_000_000_000)),
	)
	bank.FundAccount(testProvider, deposit)

	minted, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyDec{})
	require.NoError(t, err)

	expected := before.TotalShares.QuoRaw(10)
	diff := minted.Sub(expected).Abs()
	require.True(t, diff.LTE(sdkmath.NewInt(2)), "minted %s, expected about %s", minted, expected)
	require.Equal(t, minted, bank.Balance(testProvider).AmountOf(before.LpDenom))

	after, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, before.TotalShares.Add(minted), after.TotalShares)
	require.Equal(t, sdkmath.NewInt(33_000_000_000), after.Assets[0].Amount)
}

func TestProvideLiquidityOneSidedMintsNothing(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	fees := types.NewPoolFees(
		sdkmath.LegacyNewDecWithPrec(3, 2), // 3% swap fee
		sdkmath.LegacyZeroDec(),
		sdkmath.LegacyZeroDec(),
	)
	poolID := createConstantProductPool(t, k, bank, ctx, fees)

	before, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	// A one-sided deposit contributes a zero minimum ratio and must
	// mint nothing even with no tolerance set. Otherwise a
	// deposit-then-withdraw round trip would move value across the
	// pool without ever paying the swap fee.
	deposit := sdk.NewCoins(sdk.NewCoin("uatom", sdkmath.NewInt(3_000_000_000)))
	bank.FundAccount(testProvider, deposit)

	_, err = k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyDec{})
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)

	after, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, before.TotalShares, after.TotalShares)
	require.Equal(t, before.Assets, after.Assets)
	require.True(t, bank.Balance(testProvider).AmountOf(before.LpDenom).IsZero())
	require.Equal(t, deposit.AmountOf("uatom"), bank.Balance(testProvider).AmountOf("uatom"))
}

func TestProvideLiquidityExcessBeyondRatioIsDonated(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	before, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	// uusdc is the limiting asset at 10% of its reserve; the uatom
	// half is at 20%. Shares mint at the 10% minimum and the surplus
	// uatom stays with the pool.
	deposit := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(6_000_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(2_000_000_000)),
	)
	bank.FundAccount(testProvider, deposit)

	minted, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyDec{})
	require.NoError(t, err)
	require.Equal(t, before.TotalShares.QuoRaw(10), minted)

	after, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(36_000_000_000), after.Assets[0].Amount)
	require.Equal(t, sdkmath.NewInt(22_000_000_000), after.Assets[1].Amount)
}

func TestProvideLiquidityRejectsDustDeposit(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	// A deposit that prices to zero shares must fail instead of
	// silently consuming the funds.
	deposit := sdk.NewCoins(sdk.NewCoin("uatom", sdkmath.NewInt(1)))
	bank.FundAccount(testProvider, deposit)

	_, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyDec{})
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)
}

func TestProvideLiquidityUnknownAsset(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	deposit := sdk.NewCoins(sdk.NewCoin("uosmo", sdkmath.NewInt(1_000_000)))
	_, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyDec{})
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}

func TestWithdrawLiquidityRoundTrip(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	deposit := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(3_000_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(2_000_000_000)),
	)
	bank.FundAccount(testProvider, deposit)
	minted, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyDec{})
	require.NoError(t, err)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	refunds, err := k.WithdrawLiquidity(ctx, testProvider, poolID, minted)
	require.NoError(t, err)
	require.Len(t, refunds, 2)

	// The round trip returns the deposit up to integer dust, and the
	// dust stays in the pool.
	for _, r := range refunds {
		in := deposit.AmountOf(r.Denom)
		require.True(t, r.Amount.LTE(in))
		require.True(t, in.Sub(r.Amount).LTE(sdkmath.NewInt(2)),
			"refund %s%s lost more than dust from %s", r.Amount, r.Denom, in)
	}
	require.True(t, bank.Balance(testProvider).AmountOf(pool.LpDenom).IsZero())
}

func TestWithdrawLiquidityExceedingShares(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	_, err = k.WithdrawLiquidity(ctx, testProvider, poolID, pool.TotalShares.AddRaw(1))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestWithdrawLiquidityExcludesProtocolFees(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	fees := types.NewPoolFees(
		sdkmath.LegacyZeroDec(),
		sdkmath.LegacyNewDecWithPrec(1, 2), // 1% protocol fee
		sdkmath.LegacyZeroDec(),
	)
	poolID := createConstantProductPool(t, k, bank, ctx, fees)

	// Run a swap so the protocol fee accumulator is non-empty.
	offer := sdk.NewCoin("uatom", sdkmath.NewInt(1_500_000_000))
	bank.FundAccount(testTrader, sdk.NewCoins(offer))
	result, err := k.ExecuteSwap(ctx, testTrader, &types.MsgSwap{
		Trader:     testTrader.String(),
		PoolId:     poolID,
		OfferAsset: offer,
		AskDenom:   "uusdc",
	})
	require.NoError(t, err)
	require.True(t, result.ProtocolFeeAmount.IsPositive())

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	// Withdrawing every share refunds only the tradable reserves: the
	// accumulated protocol fee stays behind for collection.
	creatorShares := bank.Balance(testCreator).AmountOf(pool.LpDenom)
	refunds, err := k.WithdrawLiquidity(ctx, testCreator, poolID, creatorShares)
	require.NoError(t, err)

	after, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.True(t, after.ProtocolFees[1].Amount.Equal(result.ProtocolFeeAmount))
	require.True(t, after.Assets[1].Amount.GTE(result.ProtocolFeeAmount),
		"pool reserve no longer covers the fee accumulator")
	for _, r := range refunds {
		require.False(t, r.Amount.IsNegative())
	}
}
