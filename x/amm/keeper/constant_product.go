package keeper

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// Constant product (x*y=k) curve math. All intermediates are formed
// over big.Int so reserve-scale values cannot overflow before the
// final truncation back to math.Int. Callers must reject swaps against
// an empty pool before reaching these functions; a zero reserve here
// is a programming error surfaced as ErrSwapOverflow rather than a
// division panic.

// ConstantProductSwap computes the gross (pre-fee) return amount and
// the spread for an exact-offer swap.
//
// return = askPool * offer / (offerPool + offer)
// spread = offer * askPool/offerPool - return, floored at zero.
//
// The floor matters: under extreme pool imbalance the naive
// exchange-rate amount can drop below the curve output, and spread is
// informational, never negative.
func ConstantProductSwap(offerPool, askPool, offerAmount sdkmath.Int) (returnAmount, spreadAmount sdkmath.Int, err error) {
	if offerPool.IsZero() || askPool.IsZero() {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), types.ErrSwapOverflow.Wrap("swap against empty pool")
	}

	num := new(big.Int).Mul(askPool.BigInt(), offerAmount.BigInt())
	den := new(big.Int).Add(offerPool.BigInt(), offerAmount.BigInt())
	ret := num.Quo(num, den)
	returnAmount = sdkmath.NewIntFromBigInt(ret)

	naive := new(big.Int).Mul(offerAmount.BigInt(), askPool.BigInt())
	naive.Quo(naive, offerPool.BigInt())
	spread := naive.Sub(naive, returnAmount.BigInt())
	if spread.Sign() < 0 {
		spreadAmount = sdkmath.ZeroInt()
	} else {
		spreadAmount = sdkmath.NewIntFromBigInt(spread)
	}
	return returnAmount, spreadAmount, nil
}

// ConstantProductReverse solves for the offer amount required so that
// the swap nets askAmount after the configured fees are removed from
// the gross output. The target is first inflated by 1/(1 - total fee
// share), then the constant product formula is inverted.
func ConstantProductReverse(offerPool, askPool, askAmount sdkmath.Int, fees types.PoolFees) (offerAmount, spreadAmount sdkmath.Int, err error) {
	if offerPool.IsZero() || askPool.IsZero() {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), types.ErrSwapOverflow.Wrap("swap against empty pool")
	}

	oneMinusFees := sdkmath.LegacyOneDec().Sub(fees.TotalShare())
	if !oneMinusFees.IsPositive() {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), types.ErrInvalidFees.Wrap("fees consume the entire return")
	}

	// gross = ceil(ask / (1 - fees)) so the net amount is never short.
	grossAsk := sdkmath.LegacyNewDecFromInt(askAmount).Quo(oneMinusFees).Ceil().TruncateInt()
	if grossAsk.GTE(askPool) {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf("ask amount %s exceeds pool depth %s", grossAsk, askPool)
	}

	// offer = ceil(offerPool * gross / (askPool - gross)). Rounding the
	// offer up keeps the forward settlement from netting short of the
	// requested ask.
	num := new(big.Int).Mul(offerPool.BigInt(), grossAsk.BigInt())
	den := new(big.Int).Sub(askPool.BigInt(), grossAsk.BigInt())
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	offerAmount = sdkmath.NewIntFromBigInt(quo)

	naive := new(big.Int).Mul(offerAmount.BigInt(), askPool.BigInt())
	naive.Quo(naive, offerPool.BigInt())
	spread := naive.Sub(naive, grossAsk.BigInt())
	if spread.Sign() < 0 {
		spreadAmount = sdkmath.ZeroInt()
	} else {
		spreadAmount = sdkmath.NewIntFromBigInt(spread)
	}
	return offerAmount, spreadAmount, nil
}
