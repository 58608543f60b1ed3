package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

func TestComputeWeightLinearAccrual(t *testing.T) {
	rate := sdkmath.LegacyOneDec()

	// A 10_000 position opened at epoch 2 gains 10_000 weight per
	// elapsed epoch at the full growth rate.
	bond := types.Bond{
		Owner:       "owner",
		Asset:       sdk.NewCoin("ulgn", sdkmath.NewInt(10_000)),
		Weight:      sdkmath.ZeroInt(),
		LastUpdated: 2,
	}
	require.Equal(t, sdkmath.NewInt(10_000), bond.WeightAt(3, rate))
	require.Equal(t, sdkmath.NewInt(30_000), bond.WeightAt(5, rate))
}

func TestComputeWeightZeroRateFreezes(t *testing.T) {
	bond := types.Bond{
		Asset:       sdk.NewCoin("ulgn", sdkmath.NewInt(10_000)),
		Weight:      sdkmath.NewInt(20_000),
		LastUpdated: 2,
	}
	require.Equal(t, sdkmath.NewInt(20_000), bond.WeightAt(5, sdkmath.LegacyZeroDec()))
}

func TestComputeWeightFractionalRate(t *testing.T) {
	half := sdkmath.LegacyNewDecWithPrec(5, 1)
	got := types.ComputeWeight(4, sdkmath.ZeroInt(), sdkmath.NewInt(10_001), half, 0)
	// floor(10_001 * 0.5 * 4) = 20_002
	require.Equal(t, sdkmath.NewInt(20_002), got)
}

func TestComputeWeightNoBackwardsAccrual(t *testing.T) {
	rate := sdkmath.LegacyOneDec()
	w := sdkmath.NewInt(7)

	require.Equal(t, w, types.ComputeWeight(5, w, sdkmath.NewInt(100), rate, 5))
	require.Equal(t, w, types.ComputeWeight(3, w, sdkmath.NewInt(100), rate, 5))
	require.Equal(t, w, types.ComputeWeight(9, w, sdkmath.ZeroInt(), rate, 5))
}

func TestUserShareProportional(t *testing.T) {
	rate := sdkmath.LegacyOneDec()
	bonds := []types.Bond{{
		Asset:       sdk.NewCoin("ulgn", sdkmath.NewInt(10_000)),
		Weight:      sdkmath.ZeroInt(),
		LastUpdated: 0,
	}}
	index := types.GlobalIndex{
		BondedAmount: sdkmath.NewInt(40_000),
		BondedAssets: sdk.NewCoins(sdk.NewCoin("ulgn", sdkmath.NewInt(40_000))),
		LastWeight:   sdkmath.ZeroInt(),
		LastUpdated:  0,
	}

	share, err := types.UserShare(2, bonds, index, rate)
	require.NoError(t, err)
	require.Equal(t, sdkmath.LegacyNewDecWithPrec(25, 2), share)
}

func TestUserShareEmptyIndex(t *testing.T) {
	share, err := types.UserShare(3, nil, types.NewGlobalIndex(), sdkmath.LegacyOneDec())
	require.NoError(t, err)
	require.True(t, share.IsZero())
}

func TestUserShareCorruptLedgerFails(t *testing.T) {
	rate := sdkmath.LegacyOneDec()
	bonds := []types.Bond{{
		Asset:       sdk.NewCoin("ulgn", sdkmath.NewInt(50_000)),
		Weight:      sdkmath.ZeroInt(),
		LastUpdated: 0,
	}}
	// Global index tracks less than the user holds: corrupt.
	index := types.GlobalIndex{
		BondedAmount: sdkmath.NewInt(10_000),
		LastWeight:   sdkmath.ZeroInt(),
		LastUpdated:  0,
	}

	_, err := types.UserShare(2, bonds, index, rate)
	require.ErrorIs(t, err, types.ErrInvalidShare)
}

func TestComputeWeightProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := sdkmath.NewInt(rapid.Int64Range(1, 1_000_000_000_000).Draw(t, "amount"))
		start := rapid.Uint64Range(0, 1_000).Draw(t, "start")
		elapsed := rapid.Uint64Range(0, 1_000).Draw(t, "elapsed")
		rateBps := rapid.Int64Range(0, 10_000).Draw(t, "rateBps")
		rate := sdkmath.LegacyNewDecWithPrec(rateBps, 4)

		w0 := sdkmath.NewInt(rapid.Int64Range(0, 1_000_000).Draw(t, "w0"))
		w1 := types.ComputeWeight(start+elapsed, w0, amount, rate, start)

		// Weight never shrinks.
		require.True(t, w1.GTE(w0))

		// Accrual is additive across a split at any midpoint when the
		// rate has no truncation (integer rates).
		if rateBps == 10_000 && elapsed > 1 {
			mid := start + elapsed/2
			stepped := types.ComputeWeight(start+elapsed,
				types.ComputeWeight(mid, w0, amount, rate, start),
				amount, rate, mid)
			require.Equal(t, w1, stepped)
		}
	})
}
