package types

import (
	sdkmath "cosmossdk.io/math"
)

// Params holds the module parameters.
//
// MaxAllowedSlippage is the single ceiling for user-supplied deposit
// slippage tolerances. Tolerances above it are rejected outright,
// never clamped, so the guard behaves identically on every call path.
type Params struct {
	DefaultFees        PoolFees          `json:"default_fees"`
	MaxAllowedSlippage sdkmath.LegacyDec `json:"max_allowed_slippage"`
	DefaultMaxSpread   sdkmath.LegacyDec `json:"default_max_spread"`
	PoolCreationFee    sdkmath.Int       `json:"pool_creation_fee"`
}

// DefaultParams returns the default module parameters.
func DefaultParams() Params {
	return Params{
		DefaultFees: NewPoolFees(
			sdkmath.LegacyNewDecWithPrec(3, 3), // 0.3%
			sdkmath.LegacyNewDecWithPrec(1, 3), // 0.1%
			sdkmath.LegacyZeroDec(),
		),
		MaxAllowedSlippage: sdkmath.LegacyNewDecWithPrec(50, 2), // 50%
		DefaultMaxSpread:   sdkmath.LegacyNewDecWithPrec(10, 2), // 10%
		PoolCreationFee:    sdkmath.ZeroInt(),
	}
}

// Validate validates the set of params.
func (p Params) Validate() error {
	if err := p.DefaultFees.Validate(); err != nil {
		return err
	}
	if p.MaxAllowedSlippage.IsNil() || p.MaxAllowedSlippage.IsNegative() || p.MaxAllowedSlippage.GT(sdkmath.LegacyOneDec()) {
		return ErrInvalidSlippageTolerance.Wrapf("max allowed slippage %s", p.MaxAllowedSlippage)
	}
	if p.DefaultMaxSpread.IsNil() || p.DefaultMaxSpread.IsNegative() || p.DefaultMaxSpread.GT(sdkmath.LegacyOneDec()) {
		return ErrInvalidSlippageTolerance.Wrapf("default max spread %s", p.DefaultMaxSpread)
	}
	if p.PoolCreationFee.IsNil() || p.PoolCreationFee.IsNegative() {
		return ErrInvalidZeroAmount.Wrap("pool creation fee cannot be negative")
	}
	return nil
}
