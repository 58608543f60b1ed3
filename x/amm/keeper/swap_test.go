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

var (
	testTrader  = sdk.AccAddress([]byte("trader______________"))
	testCreator = sdk.AccAddress([]byte("creator_____________"))
)

// createConstantProductPool seeds a 30B/20B uatom/uusdc pool with the
// given fees and returns its id.
func createConstantProductPool(t *testing.T, k *keeper.Keeper, bank *keepertest.MockBankKeeper, ctx sdk.Context, fees types.PoolFees) uint64 {
	t.Helper()

	deposit := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(30_000_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(20_000_000_000)),
	)
	bank.FundAccount(testCreator, deposit)

	pool, _, err := k.CreatePool(ctx, testCreator, &types.MsgCreatePool{
		Creator:  testCreator.String(),
		PoolType: types.PoolTypeConstantProduct,
		Assets: []types.PoolAsset{
			{Denom: "uatom", Amount: sdkmath.NewInt(30_000_000_000), Decimals: 6},
			{Denom: "uusdc", Amount: sdkmath.NewInt(20_000_000_000), Decimals: 6},
		},
		Fees: fees,
	})
	require.NoError(t, err)
	return pool.Id
}

func TestComputeSwapZeroFees(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	result, err := k.ComputeSwap(ctx, pool, "uatom", "uusdc", sdkmath.NewInt(1_500_000_000))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(952_380_952), result.ReturnAmount)
	require.Equal(t, sdkmath.NewInt(47_619_048), result.SpreadAmount)
	require.True(t, result.TotalFees().IsZero())
}

func TestComputeSwapFeeDecomposition(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	fees := types.NewPoolFees(
		sdkmath.LegacyNewDecWithPrec(3, 3), // swap 0.3%
		sdkmath.LegacyNewDecWithPrec(1, 3), // protocol 0.1%
		sdkmath.LegacyNewDecWithPrec(1, 3), // burn 0.1%
	)
	poolID := createConstantProductPool(t, k, bank, ctx, fees)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	result, err := k.ComputeSwap(ctx, pool, "uatom", "uusdc", sdkmath.NewInt(1_500_000_000))
	require.NoError(t, err)

	// Each fee is floor(pre-fee return * share), computed on the same
	// base, never cascading.
	require.Equal(t, sdkmath.NewInt(2_857_142), result.SwapFeeAmount)
	require.Equal(t, sdkmath.NewInt(952_380), result.ProtocolFeeAmount)
	require.Equal(t, sdkmath.NewInt(952_380), result.BurnFeeAmount)
	require.True(t, result.ExtraFeeAmount.IsZero())
	require.Equal(t, sdkmath.NewInt(947_619_050), result.ReturnAmount)
}

func TestComputeSwapRejectsSameAsset(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	_, err = k.ComputeSwap(ctx, pool, "uatom", "uatom", sdkmath.NewInt(100))
	require.ErrorIs(t, err, types.ErrSameAsset)
}

func TestComputeSwapRejectsZeroOffer(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	_, err = k.ComputeSwap(ctx, pool, "uatom", "uusdc", sdkmath.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)
}

func TestComputeSwapRejectsUnknownDenom(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	_, err = k.ComputeSwap(ctx, pool, "uosmo", "uusdc", sdkmath.NewInt(100))
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}

func TestExecuteSwapSettlement(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	fees := types.NewPoolFees(
		sdkmath.LegacyNewDecWithPrec(3, 3),
		sdkmath.LegacyNewDecWithPrec(1, 3),
		sdkmath.LegacyNewDecWithPrec(1, 3),
	)
	poolID := createConstantProductPool(t, k, bank, ctx, fees)

	offer := sdk.NewCoin("uatom", sdkmath.NewInt(1_500_000_000))
	bank.FundAccount(testTrader, sdk.NewCoins(offer))

	result, err := k.ExecuteSwap(ctx, testTrader, &types.MsgSwap{
		Trader:     testTrader.String(),
		PoolId:     poolID,
		OfferAsset: offer,
		AskDenom:   "uusdc",
	})
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(947_619_050), result.ReturnAmount)

	// Trader paid the offer and received exactly the net return.
	require.True(t, bank.Balance(testTrader).AmountOf("uatom").IsZero())
	require.Equal(t, result.ReturnAmount, bank.Balance(testTrader).AmountOf("uusdc"))

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	// Offer joined the reserve; return and burn fee left it; protocol
	// fee moved to the accumulator and out of the tradable reserve.
	require.Equal(t, sdkmath.NewInt(31_500_000_000), pool.Assets[0].Amount)
	expectedAsk := sdkmath.NewInt(20_000_000_000).
		Sub(result.ReturnAmount).
		Sub(result.BurnFeeAmount)
	require.Equal(t, expectedAsk, pool.Assets[1].Amount)
	require.Equal(t, result.ProtocolFeeAmount, pool.ProtocolFees[1].Amount)

	tradable, err := pool.TradableReserve("uusdc")
	require.NoError(t, err)
	require.Equal(t, expectedAsk.Sub(result.ProtocolFeeAmount), tradable)
}

func TestExecuteSwapMinReceive(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	offer := sdk.NewCoin("uatom", sdkmath.NewInt(1_500_000_000))
	bank.FundAccount(testTrader, sdk.NewCoins(offer))

	_, err := k.ExecuteSwap(ctx, testTrader, &types.MsgSwap{
		Trader:     testTrader.String(),
		PoolId:     poolID,
		OfferAsset: offer,
		AskDenom:   "uusdc",
		MinReceive: sdkmath.NewInt(952_380_953),
	})
	require.ErrorIs(t, err, types.ErrMinimumReceiveAssertion)

	// Nothing moved on the failed swap.
	require.Equal(t, offer.Amount, bank.Balance(testTrader).AmountOf("uatom"))
}

func TestExecuteSwapMaxSpreadGuard(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	// An offer deep enough to move the price far beyond 10% default
	// max spread.
	offer := sdk.NewCoin("uatom", sdkmath.NewInt(20_000_000_000))
	bank.FundAccount(testTrader, sdk.NewCoins(offer))

	_, err := k.ExecuteSwap(ctx, testTrader, &types.MsgSwap{
		Trader:     testTrader.String(),
		PoolId:     poolID,
		OfferAsset: offer,
		AskDenom:   "uusdc",
	})
	require.ErrorIs(t, err, types.ErrMaxSpreadAssertion)
}

func TestExecuteSwapBeliefPriceGuard(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	offer := sdk.NewCoin("uatom", sdkmath.NewInt(1_500_000_000))
	bank.FundAccount(testTrader, sdk.NewCoins(offer))

	// Belief price of 1 uatom per uusdc expects 1.5B out; the pool
	// returns ~952M, a ~36% shortfall against a 1% allowance.
	_, err := k.ExecuteSwap(ctx, testTrader, &types.MsgSwap{
		Trader:      testTrader.String(),
		PoolId:      poolID,
		OfferAsset:  offer,
		AskDenom:    "uusdc",
		BeliefPrice: sdkmath.LegacyOneDec(),
		MaxSpread:   sdkmath.LegacyNewDecWithPrec(1, 2),
	})
	require.ErrorIs(t, err, types.ErrMaxSpreadAssertion)
}

func TestComputeReverseSwapRoundTrip(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	fees := types.NewPoolFees(
		sdkmath.LegacyNewDecWithPrec(3, 3),
		sdkmath.LegacyNewDecWithPrec(1, 3),
		sdkmath.LegacyNewDecWithPrec(1, 3),
	)
	poolID := createConstantProductPool(t, k, bank, ctx, fees)
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	target := sdkmath.NewInt(500_000_000)
	offer, result, err := k.ComputeReverseSwap(ctx, pool, "uatom", "uusdc", target)
	require.NoError(t, err)
	require.True(t, offer.IsPositive())
	require.True(t, result.ReturnAmount.GTE(target),
		"reverse offer nets %s, wanted %s", result.ReturnAmount, target)
}
