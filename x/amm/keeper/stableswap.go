package keeper

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// Curve-style stableswap solvers for 2- and 3-asset pools. Both the
// invariant D and the post-swap balance Y are found by Newton-Raphson
// over big.Int, with a fixed iteration cap and a convergence tolerance
// of one unit in the working precision. Failure to converge is a hard
// stop: an approximate D or Y must never leak into settlement.

const maxNewtonIterations = 256

var bigOne = big.NewInt(1)

// pow10 returns 10^exp as a big.Int multiplier.
func pow10(exp uint32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}

// NormalizeBalance scales an amount from its native decimals up to the
// target working precision. The target is always the maximum decimals
// among the pool's assets, so scaling only ever multiplies.
func NormalizeBalance(amount sdkmath.Int, decimals, targetDecimals uint32) sdkmath.Int {
	if decimals >= targetDecimals {
		return amount
	}
	scaled := new(big.Int).Mul(amount.BigInt(), pow10(targetDecimals-decimals))
	return sdkmath.NewIntFromBigInt(scaled)
}

// DenormalizeBalance scales an amount from the working precision back
// down to its native decimals, truncating.
func DenormalizeBalance(amount sdkmath.Int, decimals, targetDecimals uint32) sdkmath.Int {
	if decimals >= targetDecimals {
		return amount
	}
	scaled := new(big.Int).Quo(amount.BigInt(), pow10(targetDecimals-decimals))
	return sdkmath.NewIntFromBigInt(scaled)
}

// annFor returns A * n^n as a big.Int.
func annFor(amp uint64, n int) *big.Int {
	ann := new(big.Int).SetUint64(amp)
	nBig := big.NewInt(int64(n))
	for i := 0; i < n; i++ {
		ann.Mul(ann, nBig)
	}
	return ann
}

// StableSwapD solves the stableswap invariant
//
//	A*n^n*Σx_i + D = A*D*n^n + D^(n+1)/(n^n*Πx_i)
//
// for D over the given (already precision-normalized) balances.
// Returns ErrConvergeFailure if Newton-Raphson does not settle within
// the iteration cap, and ErrSwapOverflow for a zero balance (callers
// must reject empty pools upstream).
func StableSwapD(balances []sdkmath.Int, amp uint64) (sdkmath.Int, error) {
	n := len(balances)
	nBig := big.NewInt(int64(n))

	sum := new(big.Int)
	for _, b := range balances {
		if b.IsZero() {
			return sdkmath.ZeroInt(), types.ErrSwapOverflow.Wrap("stableswap invariant over empty balance")
		}
		sum.Add(sum, b.BigInt())
	}
	if sum.Sign() == 0 {
		return sdkmath.ZeroInt(), nil
	}

	ann := annFor(amp, n)
	d := new(big.Int).Set(sum)
	tmp := new(big.Int)

	for i := 0; i < maxNewtonIterations; i++ {
		// dP = D^(n+1) / (n^n * Πx_i), folded one balance at a time to
		// keep the intermediate near D's magnitude.
		dP := new(big.Int).Set(d)
		for _, b := range balances {
			dP.Mul(dP, d)
			dP.Quo(dP, tmp.Mul(b.BigInt(), nBig))
		}

		// dNext = (Ann*S + n*dP) * D / ((Ann-1)*D + (n+1)*dP)
		num := new(big.Int).Mul(ann, sum)
		num.Add(num, tmp.Mul(dP, nBig))
		num.Mul(num, d)

		den := new(big.Int).Sub(ann, bigOne)
		den.Mul(den, d)
		den.Add(den, tmp.Mul(dP, new(big.Int).Add(nBig, bigOne)))

		dNext := num.Quo(num, den)

		diff := tmp.Sub(dNext, d)
		if diff.CmpAbs(bigOne) <= 0 {
			return sdkmath.NewIntFromBigInt(dNext), nil
		}
		d.Set(dNext)
	}
	return sdkmath.ZeroInt(), types.ErrConvergeFailure.Wrap("invariant D did not converge")
}

// StableSwapY solves for the post-swap balance of the ask asset, given
// the other nAssets-1 balances (the offer asset's balance already
// updated with the incoming amount) and the pre-swap invariant D. The
// single-variable equation y^2 + b*y = c is iterated with the same
// convergence discipline as StableSwapD.
func StableSwapY(otherBalances []sdkmath.Int, d sdkmath.Int, amp uint64, nAssets int) (sdkmath.Int, error) {
	if len(otherBalances) != nAssets-1 {
		return sdkmath.ZeroInt(), types.ErrSwapOverflow.Wrapf("expected %d fixed balances, got %d", nAssets-1, len(otherBalances))
	}

	nBig := big.NewInt(int64(nAssets))
	ann := annFor(amp, nAssets)
	dBig := d.BigInt()
	tmp := new(big.Int)

	// c = D^(n+1) / (n^n * Πx_i * Ann), folded incrementally.
	c := new(big.Int).Set(dBig)
	sum := new(big.Int)
	for _, b := range otherBalances {
		if b.IsZero() {
			return sdkmath.ZeroInt(), types.ErrSwapOverflow.Wrap("stableswap solve over empty balance")
		}
		c.Mul(c, dBig)
		c.Quo(c, tmp.Mul(b.BigInt(), nBig))
		sum.Add(sum, b.BigInt())
	}
	c.Mul(c, dBig)
	c.Quo(c, tmp.Mul(ann, nBig))

	// b = S' + D/Ann (the -D term is folded into the denominator below)
	b := new(big.Int).Quo(dBig, ann)
	b.Add(b, sum)

	y := new(big.Int).Set(dBig)
	for i := 0; i < maxNewtonIterations; i++ {
		// yNext = (y^2 + c) / (2y + b - D)
		num := new(big.Int).Mul(y, y)
		num.Add(num, c)

		den := new(big.Int).Lsh(y, 1)
		den.Add(den, b)
		den.Sub(den, dBig)

		yNext := num.Quo(num, den)

		diff := tmp.Sub(yNext, y)
		if diff.CmpAbs(bigOne) <= 0 {
			return sdkmath.NewIntFromBigInt(yNext), nil
		}
		y.Set(yNext)
	}
	return sdkmath.ZeroInt(), types.ErrConvergeFailure.Wrap("balance Y did not converge")
}

// poolInvariant computes the invariant used for LP share accounting on
// the pool's normalized tradable reserves: D for stableswap pools, the
// geometric mean footprint for constant product pools (sqrt(x*y) for
// pairs).
func poolInvariant(pool types.Pool, reserves []sdkmath.Int, blockHeight int64) (sdkmath.Int, error) {
	target := pool.MaxDecimals()
	normalized := make([]sdkmath.Int, len(reserves))
	for i, r := range reserves {
		normalized[i] = NormalizeBalance(r, pool.Assets[i].Decimals, target)
	}

	if pool.IsStableSwap() {
		return StableSwapD(normalized, pool.Ramp.AmpAtHeight(blockHeight))
	}

	// Constant product: n-th root of the product of normalized
	// reserves, i.e. the balanced-pool deposit equivalent.
	product := big.NewInt(1)
	for _, b := range normalized {
		product.Mul(product, b.BigInt())
	}
	root := nthRoot(product, len(normalized))
	scaled := root.Mul(root, big.NewInt(int64(len(normalized))))
	return sdkmath.NewIntFromBigInt(scaled), nil
}

// nthRoot returns floor(v^(1/n)) by Newton iteration on big.Int.
func nthRoot(v *big.Int, n int) *big.Int {
	if v.Sign() == 0 {
		return new(big.Int)
	}
	if n == 2 {
		return new(big.Int).Sqrt(v)
	}
	nBig := big.NewInt(int64(n))
	nMinusOne := big.NewInt(int64(n - 1))
	x := new(big.Int).Set(v)
	for {
		// xNext = ((n-1)*x + v/x^(n-1)) / n
		pow := new(big.Int).Set(x)
		for i := 1; i < n-1; i++ {
			pow.Mul(pow, x)
		}
		xNext := new(big.Int).Quo(v, pow)
		xNext.Add(xNext, new(big.Int).Mul(nMinusOne, x))
		xNext.Quo(xNext, nBig)
		if xNext.Cmp(x) >= 0 {
			return x
		}
		x.Set(xNext)
	}
}
