package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/lagoon-chain/lagoon/testutil/keeper"
	"github.com/lagoon-chain/lagoon/x/amm/types"
)

func TestProvideLiquiditySlippageWithinTolerance(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	// Deposit matches the 3:2 reserve ratio exactly; any tolerance
	// accepts it.
	deposit := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(3_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(2_000_000)),
	)
	bank.FundAccount(testProvider, deposit)

	_, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyZeroDec())
	require.NoError(t, err)
}

func TestProvideLiquiditySlippageRejected(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	// A 1:1 deposit into a 3:2 pool deviates ~33%, beyond a 1%
	// tolerance.
	deposit := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(2_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(2_000_000)),
	)
	bank.FundAccount(testProvider, deposit)

	_, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyNewDecWithPrec(1, 2))
	require.ErrorIs(t, err, types.ErrMaxSlippageAssertion)
}

func TestProvideLiquidityOneSidedRejectedWithTolerance(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	// With a tolerance set, a one-sided deposit can never satisfy the
	// ratio check.
	deposit := sdk.NewCoins(sdk.NewCoin("uatom", sdkmath.NewInt(1_000_000_000)))
	bank.FundAccount(testProvider, deposit)

	_, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyNewDecWithPrec(5, 2))
	require.ErrorIs(t, err, types.ErrMaxSlippageAssertion)

	// Without a tolerance the ratio guard is skipped, but min-ratio
	// pricing still mints nothing for a one-sided deposit.
	_, err = k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyDec{})
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)
}

func TestProvideLiquidityToleranceAboveMaximumRejected(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	poolID := createConstantProductPool(t, k, bank, ctx, types.ZeroPoolFees())

	deposit := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(3_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(2_000_000)),
	)
	bank.FundAccount(testProvider, deposit)

	// Default MaxAllowedSlippage is 50%: 60% is rejected, never
	// clamped.
	_, err := k.ProvideLiquidity(ctx, testProvider, poolID, deposit, sdkmath.LegacyNewDecWithPrec(60, 2))
	require.ErrorIs(t, err, types.ErrInvalidSlippageTolerance)
}

func TestStableSwapSlippageAcceptsLopsidedDeposit(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)

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
		Amp:  100,
	})
	require.NoError(t, err)

	// Stableswap pools take any composition; only the per-share value
	// is guarded, and a modest one-sided deposit barely dents it.
	oneSided := sdk.NewCoins(sdk.NewCoin("uusdc", sdkmath.NewInt(10_000_000)))
	bank.FundAccount(testProvider, oneSided)

	_, err = k.ProvideLiquidity(ctx, testProvider, pool.Id, oneSided, sdkmath.LegacyNewDecWithPrec(1, 2))
	require.NoError(t, err)
}
