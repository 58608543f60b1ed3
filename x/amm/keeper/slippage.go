package keeper

import (
	"context"
	"math/big"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// assertSlippageTolerance rejects deposits whose composition deviates
// too far from the pool's current balance. A nil tolerance disables the
// check; a tolerance above the chain-wide maximum is rejected outright
// rather than clamped.
//
// Constant product pools get the symmetric ratio check: the deposit
// ratio must match the reserve ratio within the tolerance in both
// directions. Stableswap pools accept any composition, so the check is
// value-level instead: the per-share deposit value must not fall more
// than the tolerance below the per-share pool value.
func (k Keeper) assertSlippageTolerance(ctx context.Context, pool types.Pool, deposits sdk.Coins, reserves []sdkmath.Int, minted sdkmath.Int, tolerance sdkmath.LegacyDec) error {
	if tolerance.IsNil() {
		return nil
	}
	if tolerance.IsNegative() {
		return types.ErrInvalidSlippageTolerance.Wrapf("negative tolerance %s", tolerance)
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if tolerance.GT(params.MaxAllowedSlippage) {
		return types.ErrInvalidSlippageTolerance.Wrapf("tolerance %s exceeds maximum %s", tolerance, params.MaxAllowedSlippage)
	}

	if pool.IsStableSwap() {
		return assertStableSwapSlippage(pool, deposits, reserves, minted, tolerance)
	}
	return assertRatioSlippage(pool, deposits, reserves, tolerance)
}

// assertRatioSlippage checks deposit_i/deposit_j against
// reserve_i/reserve_j for every asset pair, scaled by (1 - tolerance),
// in both directions. Cross-multiplication avoids any division.
func assertRatioSlippage(pool types.Pool, deposits sdk.Coins, reserves []sdkmath.Int, tolerance sdkmath.LegacyDec) error {
	oneMinusTol := sdkmath.LegacyOneDec().Sub(tolerance)
	for i := range pool.Assets {
		for j := i + 1; j < len(pool.Assets); j++ {
			di := deposits.AmountOf(pool.Assets[i].Denom)
			dj := deposits.AmountOf(pool.Assets[j].Denom)
			if di.IsZero() || dj.IsZero() {
				return types.ErrMaxSlippageAssertion.Wrap("one-sided deposit exceeds any ratio tolerance")
			}
			// di * rj * (1-tol) <= dj * ri  and the reverse
			lhs := new(big.Int).Mul(di.BigInt(), reserves[j].BigInt())
			rhs := new(big.Int).Mul(dj.BigInt(), reserves[i].BigInt())
			if !withinTolerance(lhs, rhs, oneMinusTol) || !withinTolerance(rhs, lhs, oneMinusTol) {
				return types.ErrMaxSlippageAssertion.Wrapf("deposit ratio deviates from pool ratio beyond %s", tolerance)
			}
		}
	}
	return nil
}

// withinTolerance reports a*(1-tol) <= b without rounding loss.
func withinTolerance(a, b *big.Int, oneMinusTol sdkmath.LegacyDec) bool {
	scaledA := new(big.Int).Mul(a, oneMinusTol.BigInt())
	scaledB := new(big.Int).Mul(b, sdkmath.LegacyOneDec().BigInt())
	return scaledA.Cmp(scaledB) <= 0
}

// assertStableSwapSlippage compares normalized per-share value before
// and after:
//
//	(pool_total / lp_supply) * (1 - tol) <= deposit_total / minted
func assertStableSwapSlippage(pool types.Pool, deposits sdk.Coins, reserves []sdkmath.Int, minted sdkmath.Int, tolerance sdkmath.LegacyDec) error {
	maxDec := pool.MaxDecimals()
	poolTotal := new(big.Int)
	depositTotal := new(big.Int)
	for i, a := range pool.Assets {
		poolTotal.Add(poolTotal, NormalizeBalance(reserves[i], a.Decimals, maxDec).BigInt())
		depositTotal.Add(depositTotal, NormalizeBalance(deposits.AmountOf(a.Denom), a.Decimals, maxDec).BigInt())
	}

	oneMinusTol := sdkmath.LegacyOneDec().Sub(tolerance)
	// poolTotal * minted * (1-tol) <= depositTotal * lpSupply
	lhs := new(big.Int).Mul(poolTotal, minted.BigInt())
	lhs.Mul(lhs, oneMinusTol.BigInt())
	rhs := new(big.Int).Mul(depositTotal, pool.TotalShares.BigInt())
	rhs.Mul(rhs, sdkmath.LegacyOneDec().BigInt())
	if lhs.Cmp(rhs) > 0 {
		return types.ErrMaxSlippageAssertion.Wrapf("deposit value per share falls more than %s below pool value", tolerance)
	}
	return nil
}
