package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultGracePeriod is how many epochs a reward bucket stays
// claimable after promotion.
const DefaultGracePeriod uint64 = 21

// Params holds the bonding module parameters.
type Params struct {
	BondDenoms  []string          `json:"bond_denoms"`
	GrowthRate  sdkmath.LegacyDec `json:"growth_rate"`
	GracePeriod uint64            `json:"grace_period"`
}

// DefaultParams returns the default bonding parameters: full linear
// weight accrual and no bondable denoms until governance sets them.
func DefaultParams() Params {
	return Params{
		BondDenoms:  []string{},
		GrowthRate:  sdkmath.LegacyOneDec(),
		GracePeriod: DefaultGracePeriod,
	}
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	seen := make(map[string]struct{}, len(p.BondDenoms))
	for _, denom := range p.BondDenoms {
		if err := sdk.ValidateDenom(denom); err != nil {
			return ErrInvalidBondDenom.Wrapf("%s: %v", denom, err)
		}
		if _, ok := seen[denom]; ok {
			return ErrInvalidBondDenom.Wrapf("duplicate denom %s", denom)
		}
		seen[denom] = struct{}{}
	}
	if p.GrowthRate.IsNil() || p.GrowthRate.IsNegative() || p.GrowthRate.GT(sdkmath.LegacyOneDec()) {
		return ErrInvalidGrowthRate.Wrapf("growth rate %s outside [0, 1]", p.GrowthRate)
	}
	if p.GracePeriod < 1 {
		return ErrInvalidGracePeriod.Wrap("grace period must be at least one epoch")
	}
	return nil
}

// IsBondDenom reports whether denom is configured as bondable.
func (p Params) IsBondDenom(denom string) bool {
	for _, d := range p.BondDenoms {
		if d == denom {
			return true
		}
	}
	return false
}
