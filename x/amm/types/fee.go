package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// Fee represents a single fee category as a share of an amount.
type Fee struct {
	Share sdkmath.LegacyDec `json:"share"`
}

// NewFee creates a Fee from a decimal share.
func NewFee(share sdkmath.LegacyDec) Fee {
	return Fee{Share: share}
}

// ZeroFee returns a fee with a zero share.
func ZeroFee() Fee {
	return Fee{Share: sdkmath.LegacyZeroDec()}
}

// Validate checks that the fee share is within [0, 1].
func (f Fee) Validate() error {
	if f.Share.IsNil() || f.Share.IsNegative() || f.Share.GT(sdkmath.LegacyOneDec()) {
		return ErrInvalidFee.Wrapf("share %s", f.Share)
	}
	return nil
}

// IsZero reports whether the fee share is zero.
func (f Fee) IsZero() bool {
	return f.Share.IsNil() || f.Share.IsZero()
}

// Compute returns floor(amount * share). The multiplication is carried
// out over big.Int intermediates so that reserve-scale amounts cannot
// overflow before truncation.
func (f Fee) Compute(amount sdkmath.Int) sdkmath.Int {
	if f.IsZero() || amount.IsZero() {
		return sdkmath.ZeroInt()
	}
	// LegacyDec carries 18 fractional digits; share.BigInt() is the
	// scaled numerator.
	num := new(big.Int).Mul(amount.BigInt(), f.Share.BigInt())
	num.Quo(num, sdkmath.LegacyOneDec().BigInt())
	return sdkmath.NewIntFromBigInt(num)
}

// PoolFees is the closed set of fee categories applied on every swap.
// ExtraFee is the network-specific dimension; it stays zero on chains
// that do not use it so settlement code is uniform across deployments.
type PoolFees struct {
	SwapFee     Fee `json:"swap_fee"`
	ProtocolFee Fee `json:"protocol_fee"`
	BurnFee     Fee `json:"burn_fee"`
	ExtraFee    Fee `json:"extra_fee"`
}

// NewPoolFees builds a PoolFees with the extra fee zeroed.
func NewPoolFees(swap, protocol, burn sdkmath.LegacyDec) PoolFees {
	return PoolFees{
		SwapFee:     NewFee(swap),
		ProtocolFee: NewFee(protocol),
		BurnFee:     NewFee(burn),
		ExtraFee:    ZeroFee(),
	}
}

// ZeroPoolFees returns a PoolFees with every category zeroed.
func ZeroPoolFees() PoolFees {
	return PoolFees{
		SwapFee:     ZeroFee(),
		ProtocolFee: ZeroFee(),
		BurnFee:     ZeroFee(),
		ExtraFee:    ZeroFee(),
	}
}

// All returns the fee categories in their settlement order: swap,
// protocol, burn, extra. Fees are always computed on the pre-fee
// return amount and subtracted in this order.
func (pf PoolFees) All() []Fee {
	return []Fee{pf.SwapFee, pf.ProtocolFee, pf.BurnFee, pf.ExtraFee}
}

// TotalShare returns the sum of all configured fee shares.
func (pf PoolFees) TotalShare() sdkmath.LegacyDec {
	total := sdkmath.LegacyZeroDec()
	for _, f := range pf.All() {
		if !f.Share.IsNil() {
			total = total.Add(f.Share)
		}
	}
	return total
}

// Validate checks every individual share and their sum. A share out of
// [0, 1] fails with ErrInvalidFee; a sum of 1 or more fails with
// ErrInvalidFees. The two cases stay distinct so callers can tell which
// check tripped.
func (pf PoolFees) Validate() error {
	for _, f := range pf.All() {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	if pf.TotalShare().GTE(sdkmath.LegacyOneDec()) {
		return ErrInvalidFees.Wrapf("total share %s", pf.TotalShare())
	}
	return nil
}
