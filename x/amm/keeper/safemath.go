package keeper

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// Overflow-checked arithmetic over math.Int. Asset amounts never go
// through native wraparound arithmetic; any result outside the 256-bit
// range surfaces as ErrOverflow instead of panicking mid-settlement.

var maxInt256 = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

func fitsInt(v *big.Int) bool {
	return v.CmpAbs(maxInt256) < 0
}

// SafeAdd adds two math.Int values with overflow checking.
func SafeAdd(a, b sdkmath.Int) (sdkmath.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if !fitsInt(result) {
		return sdkmath.Int{}, types.ErrOverflow.Wrapf("addition %s + %s", a, b)
	}
	return sdkmath.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a, failing on underflow below zero.
func SafeSub(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.LT(b) {
		return sdkmath.Int{}, types.ErrOverflow.Wrapf("underflow %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two math.Int values with overflow checking.
func SafeMul(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.IsZero() || b.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if !fitsInt(result) {
		return sdkmath.Int{}, types.ErrOverflow.Wrapf("multiplication %s * %s", a, b)
	}
	return sdkmath.NewIntFromBigInt(result), nil
}

// SafeMulDiv computes (a * b) / c over a 256-bit-safe intermediate.
// The full product is formed in big.Int so the intermediate never
// truncates, then the quotient is checked back into range.
func SafeMulDiv(a, b, c sdkmath.Int) (sdkmath.Int, error) {
	if c.IsZero() {
		return sdkmath.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := intermediate.Quo(intermediate, c.BigInt())
	if !fitsInt(result) {
		return sdkmath.Int{}, types.ErrOverflow.Wrapf("mul-div (%s * %s) / %s", a, b, c)
	}
	return sdkmath.NewIntFromBigInt(result), nil
}
