package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

func TestFeeComputeFloors(t *testing.T) {
	fee := types.NewFee(sdkmath.LegacyNewDecWithPrec(3, 3)) // 0.3%

	// floor(952_380_952 * 0.003) = 2_857_142, never rounded up.
	require.Equal(t, sdkmath.NewInt(2_857_142), fee.Compute(sdkmath.NewInt(952_380_952)))

	// Amounts too small to reach one unit of fee pay nothing.
	require.True(t, fee.Compute(sdkmath.NewInt(100)).IsZero())
	require.True(t, fee.Compute(sdkmath.ZeroInt()).IsZero())
}

func TestFeeValidate(t *testing.T) {
	require.NoError(t, types.ZeroFee().Validate())
	require.NoError(t, types.NewFee(sdkmath.LegacyOneDec()).Validate())

	require.ErrorIs(t, types.NewFee(sdkmath.LegacyNewDec(-1)).Validate(), types.ErrInvalidFee)
	require.ErrorIs(t, types.NewFee(sdkmath.LegacyNewDec(2)).Validate(), types.ErrInvalidFee)
	require.ErrorIs(t, types.Fee{}.Validate(), types.ErrInvalidFee)
}

func TestPoolFeesValidate(t *testing.T) {
	require.NoError(t, types.ZeroPoolFees().Validate())

	ok := types.NewPoolFees(
		sdkmath.LegacyNewDecWithPrec(3, 3),
		sdkmath.LegacyNewDecWithPrec(1, 3),
		sdkmath.LegacyNewDecWithPrec(1, 3),
	)
	require.NoError(t, ok.Validate())

	// Individually valid shares whose sum reaches 1 fail with the
	// aggregate sentinel, not the per-share one.
	tooMuch := types.NewPoolFees(
		sdkmath.LegacyNewDecWithPrec(50, 2),
		sdkmath.LegacyNewDecWithPrec(30, 2),
		sdkmath.LegacyNewDecWithPrec(20, 2),
	)
	require.ErrorIs(t, tooMuch.Validate(), types.ErrInvalidFees)
}

func TestPoolFeesSettlementOrder(t *testing.T) {
	fees := types.NewPoolFees(
		sdkmath.LegacyNewDecWithPrec(3, 3),
		sdkmath.LegacyNewDecWithPrec(1, 3),
		sdkmath.LegacyNewDecWithPrec(2, 3),
	)
	all := fees.All()
	require.Len(t, all, 4)
	require.Equal(t, fees.SwapFee, all[0])
	require.Equal(t, fees.ProtocolFee, all[1])
	require.Equal(t, fees.BurnFee, all[2])
	require.Equal(t, fees.ExtraFee, all[3])
}

func TestSwapResultTotalFees(t *testing.T) {
	r := types.SwapResult{
		ReturnAmount:      sdkmath.NewInt(947_619_050),
		SpreadAmount:      sdkmath.NewInt(47_619_048),
		SwapFeeAmount:     sdkmath.NewInt(2_857_142),
		ProtocolFeeAmount: sdkmath.NewInt(952_380),
		BurnFeeAmount:     sdkmath.NewInt(952_380),
		ExtraFeeAmount:    sdkmath.ZeroInt(),
	}
	require.Equal(t, sdkmath.NewInt(4_761_902), r.TotalFees())
}
