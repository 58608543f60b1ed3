package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// ComputeWeight advances a weight from lastUpdated to epochID:
//
//	weight += amount * growthRate * (epochID - lastUpdated)
//
// Growth rate 1 is full linear accrual, 0 freezes the weight. The
// result is strictly non-decreasing for positive amounts; an epochID
// at or before lastUpdated leaves the weight unchanged.
func ComputeWeight(epochID uint64, currentWeight, bondedAmount sdkmath.Int, growthRate sdkmath.LegacyDec, lastUpdated uint64) sdkmath.Int {
	if epochID <= lastUpdated || !bondedAmount.IsPositive() || !growthRate.IsPositive() {
		return currentWeight
	}
	elapsed := new(big.Int).SetUint64(epochID - lastUpdated)

	// floor(amount * rate * elapsed), with the rate's 1e18 scale
	// divided out last.
	growth := new(big.Int).Mul(bondedAmount.BigInt(), growthRate.BigInt())
	growth.Mul(growth, elapsed)
	growth.Quo(growth, sdkmath.LegacyOneDec().BigInt())

	return currentWeight.Add(sdkmath.NewIntFromBigInt(growth))
}

// UserShare returns the owner's fraction of the global weight as of
// epochID, with every weight recomputed at that epoch against the
// supplied (usually frozen) global index. Zero when nothing has ever
// been bonded; a share above one is a ledger corruption and fails
// loudly.
func UserShare(epochID uint64, bonds []Bond, index GlobalIndex, growthRate sdkmath.LegacyDec) (sdkmath.LegacyDec, error) {
	globalWeight := index.WeightAt(epochID, growthRate)
	if !globalWeight.IsPositive() {
		return sdkmath.LegacyZeroDec(), nil
	}

	userWeight := sdkmath.ZeroInt()
	for _, b := range bonds {
		userWeight = userWeight.Add(b.WeightAt(epochID, growthRate))
	}

	share := sdkmath.LegacyNewDecFromInt(userWeight).Quo(sdkmath.LegacyNewDecFromInt(globalWeight))
	if share.GT(sdkmath.LegacyOneDec()) {
		return sdkmath.LegacyZeroDec(), ErrInvalidShare.Wrapf(
			"user weight %s exceeds global weight %s at epoch %d", userWeight, globalWeight, epochID,
		)
	}
	return share, nil
}
